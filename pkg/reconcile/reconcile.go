// Package reconcile implements the entity reconciliation engine: it loads a
// catalog, derives canonical keys and variant classifications for every
// record, clusters records denoting the same plant, merges each cluster into
// its most complete member, and persists the result.
//
// A run is a single-threaded batch pass over the whole catalog. Grouping
// needs global knowledge, so the full record set is loaded before any
// decision is made. Runs are idempotent: reconciling already-reconciled data
// produces an empty plan.
package reconcile

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/verdantlabs/verdant/pkg/catalogs"
	"github.com/verdantlabs/verdant/pkg/errors"
	"github.com/verdantlabs/verdant/pkg/grouper"
	"github.com/verdantlabs/verdant/pkg/logging"
	"github.com/verdantlabs/verdant/pkg/normalize"
	"github.com/verdantlabs/verdant/pkg/score"
	"github.com/verdantlabs/verdant/pkg/variant"
)

// Reconciler runs reconciliation passes over a catalog.
type Reconciler struct {
	normalizer *normalize.Normalizer
	classifier *variant.Classifier
	grouper    *grouper.Grouper
	scorer     *score.Scorer
	merger     *Merger
	dryRun     bool
	journal    bool
}

// New creates a Reconciler with options.
func New(opts ...Option) *Reconciler {
	options := defaultOptions().apply(opts...)

	return &Reconciler{
		normalizer: options.normalizer,
		classifier: options.classifier,
		grouper: grouper.New(
			grouper.WithNormalizer(options.normalizer),
			grouper.WithClassifier(options.classifier),
			grouper.WithSynonyms(options.synonyms),
		),
		scorer:  options.scorer,
		merger:  NewMerger(options.normalizer),
		dryRun:  options.dryRun,
		journal: options.journal,
	}
}

// Run executes one reconciliation pass against the catalog. The returned
// Result is non-nil even on failure; the error mirrors unrecoverable
// store-level problems only. Per-document persistence failures are
// collected in Result.Errors and do not abort the run.
func (r *Reconciler) Run(ctx context.Context, cat catalogs.Catalog) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := newResult(r.dryRun)

	// Loading: a fresh load each run so re-runs see the store as it is,
	// including documents a previous interrupted run already removed.
	if err := cat.Load(); err != nil {
		logger.Error().Err(err).Msg("Store unreadable, aborting before any mutation")
		result.Errors = append(result.Errors, err)
		return result.finish(StateFailed), errors.WrapResource("load", "catalog", "", err)
	}
	result.Metadata.Stats.Scanned = cat.Records().Len() + len(cat.Malformed())
	result.Metadata.Stats.Malformed = len(cat.Malformed())
	logger.Info().
		Int("records", cat.Records().Len()).
		Int("malformed", len(cat.Malformed())).
		Msg("Catalog loaded")

	// Annotating: canonical keys and lexical variant classifications.
	result.State = StateAnnotating
	candidates := r.annotate(cat, result, logger)

	// Grouping: cluster candidates, then the relational variant pass.
	result.State = StateGrouping
	groups := r.grouper.Group(candidates)
	r.classifyRelational(groups)
	logger.Debug().
		Int("candidates", len(candidates)).
		Int("groups", len(groups)).
		Msg("Candidates grouped")

	// Merging: score each multi-member group and compute the plan.
	result.State = StateMerging
	r.plan(cat, groups, result, logger)

	if r.dryRun {
		logger.Info().
			Int("merges", len(result.Plan.Merges)).
			Msg("Dry run, plan not applied")
		return result.finish(StateDone), nil
	}

	// Persisting: journal first, then winners before losers.
	result.State = StatePersisting
	if err := r.persist(cat, result, logger); err != nil {
		result.Errors = append(result.Errors, err)
		return result.finish(StateFailed), err
	}

	return result.finish(StateDone), nil
}

// annotate derives a grouping candidate for every well-formed record.
// Records whose scientificName is not a string are counted as malformed,
// excluded from grouping, and left untouched in the store.
func (r *Reconciler) annotate(cat catalogs.Catalog, result *Result, logger *zerolog.Logger) []*grouper.Candidate {
	files := cat.Records().Files()
	candidates := make([]*grouper.Candidate, 0, len(files))

	for _, file := range files {
		rec, err := cat.Record(file)
		if err != nil {
			continue
		}
		if rec.ScientificName.Malformed() {
			result.Metadata.Stats.Malformed++
			logger.Warn().
				Str("file", file).
				Msg("scientificName is not a string, record excluded from this run")
			continue
		}

		sci := rec.ScientificName.String()
		key := r.normalizer.Key(sci)
		candidates = append(candidates, &grouper.Candidate{
			File:    file,
			Name:    rec.Name,
			Key:     key,
			Variant: r.classifier.Lexical(rec.Name, sci, key),
		})
	}
	return candidates
}

// classifyRelational marks size-qualified members whose undecorated base
// sibling landed in the same group. Unlike lexical variants this does not
// block merging; it only feeds the variantInfo annotation.
func (r *Reconciler) classifyRelational(groups []*grouper.Group) {
	for _, group := range groups {
		if len(group.Members) < 2 {
			continue
		}
		for _, member := range group.Members {
			if member.Variant != nil {
				continue
			}
			label, stripped, ok := r.classifier.SizeQualifier(r.normalizer.Clean(member.Name))
			if !ok {
				continue
			}
			for _, sibling := range group.Members {
				if sibling == member {
					continue
				}
				if r.normalizer.Clean(sibling.Name) == stripped {
					member.Variant = &variant.Classification{
						BaseKey:      stripped,
						VariantLabel: label,
					}
					break
				}
			}
		}
	}
}

// plan scores every multi-member group, picks the winner, and computes the
// merged record. Planning is pure: nothing is written until persist.
func (r *Reconciler) plan(cat catalogs.Catalog, groups []*grouper.Group, result *Result, logger *zerolog.Logger) {
	for _, group := range groups {
		if len(group.Members) < 2 {
			continue
		}
		result.Metadata.Stats.Groups++

		ranked := r.rank(cat, group.Members)
		winner := ranked[0]
		losers := ranked[1:]

		winnerRec, err := cat.Record(winner.candidate.File)
		if err != nil {
			continue
		}

		loserRecs := make([]*catalogs.Record, 0, len(losers))
		loserFiles := make([]string, 0, len(losers))
		for _, loser := range losers {
			rec, err := cat.Record(loser.candidate.File)
			if err != nil {
				continue
			}
			loserRecs = append(loserRecs, &rec)
			loserFiles = append(loserFiles, loser.candidate.File)
		}

		merged := r.merger.Merge(&winnerRec, loserRecs...)
		if winner.candidate.Variant != nil {
			merged.VariantInfo = &catalogs.VariantInfo{
				BaseKey:      winner.candidate.Variant.BaseKey,
				VariantLabel: winner.candidate.Variant.VariantLabel,
			}
		}

		merge := &Merge{
			Key:    r.groupKey(winner.candidate),
			Winner: winner.candidate.File,
			Losers: loserFiles,
			merged: merged,
		}
		result.Plan.Merges = append(result.Plan.Merges, merge)
		result.Metadata.Stats.Merged += len(loserFiles)

		logger.Info().
			Str("key", merge.Key).
			Str("winner", merge.Winner).
			Strs("losers", merge.Losers).
			Msg("Merge planned")
	}
}

// scored pairs a candidate with its completeness score for ranking.
type scored struct {
	candidate *grouper.Candidate
	score     float64
}

// rank orders group members by score descending; ties keep file order so
// winner selection is deterministic.
func (r *Reconciler) rank(cat catalogs.Catalog, members []*grouper.Candidate) []scored {
	ranked := make([]scored, 0, len(members))
	for _, member := range members {
		rec, err := cat.Record(member.File)
		if err != nil {
			ranked = append(ranked, scored{candidate: member})
			continue
		}
		ranked = append(ranked, scored{candidate: member, score: r.scorer.Score(&rec)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// groupKey names a merge for the audit trail: the canonical key when the
// winner has one, its cleaned display name otherwise.
func (r *Reconciler) groupKey(c *grouper.Candidate) string {
	if c.Key != nil {
		return c.Key.String()
	}
	return r.normalizer.Clean(c.Name)
}

// persist applies the plan: journal, winners, losers, manifest. A failure
// on one document is logged and counted without stopping the run; losers
// are removed only after their winner is safely written.
func (r *Reconciler) persist(cat catalogs.Catalog, result *Result, logger *zerolog.Logger) error {
	dir := cat.WritePath()

	if r.journal && dir != "" && !result.Plan.IsEmpty() {
		if err := writeJournal(dir, result.Plan); err != nil {
			return err
		}
	}

	for _, merge := range result.Plan.Merges {
		if err := cat.SetRecord(merge.Winner, *merge.merged); err != nil {
			return err
		}
		if dir != "" {
			if err := cat.SaveRecord(merge.Winner); err != nil {
				logger.Error().Err(err).
					Str("file", merge.Winner).
					Msg("Failed to write winner, losers kept")
				result.Errors = append(result.Errors, err)
				result.Metadata.Stats.Errored++
				continue
			}
		}

		for _, loser := range merge.Losers {
			var err error
			if dir != "" {
				err = cat.RemoveRecord(loser)
			} else {
				err = cat.DeleteRecord(loser)
			}
			if err != nil {
				logger.Error().Err(err).
					Str("file", loser).
					Msg("Failed to delete loser")
				result.Errors = append(result.Errors, err)
				result.Metadata.Stats.Errored++
				continue
			}
			result.Metadata.Stats.Deleted++
		}
	}

	if dir != "" {
		if err := cat.WriteManifest(); err != nil {
			return err
		}
	}

	if r.journal && dir != "" {
		if err := removeJournal(dir); err != nil {
			logger.Warn().Err(err).Msg("Failed to remove journal")
			result.Warnings = append(result.Warnings, "journal left behind: "+err.Error())
		}
	}
	return nil
}
