// Package importer turns the companies, people and food category sources into
// a reconciled model.Dataset and hands it to a store.Writer.
//
// Stages run strictly in order, each consuming the complete output of the
// previous one:
//
//	parse → build companies → build people (+ resolve references) → reconcile friendships → save
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hivery/backend/internal/metrics"
	"hivery/backend/internal/model"
	"hivery/backend/internal/store"
	apperrors "hivery/backend/pkg/errors"
	"hivery/backend/pkg/logger"
)

// Files names the three input documents
type Files struct {
	Companies string
	People    string
	Foods     string
}

// Sources are the parsed input documents
type Sources struct {
	Companies  *Records[CompanyRecord]
	People     *Records[PersonRecord]
	Categories FoodCategories
}

// Summary describes a completed import
type Summary struct {
	RunID       uuid.UUID      `json:"run_id"`
	Companies   int            `json:"companies"`
	People      int            `json:"people"`
	Foods       int            `json:"foods"`
	Friendships int            `json:"friendships"`
	Claims      ReconcileStats `json:"claims"`
	Duration    time.Duration  `json:"duration"`
}

// Importer runs the import pipeline
type Importer struct {
	writer store.Writer
	logger *zap.Logger
}

// New creates an importer. A nil writer makes Import a dry run.
func New(writer store.Writer, log *zap.Logger) *Importer {
	return &Importer{
		writer: writer,
		logger: logger.OrNop(log),
	}
}

// LoadFiles reads and parses the three sources concurrently. The first
// failure cancels the reads still in flight.
func LoadFiles(ctx context.Context, files Files) (*Sources, error) {
	var src Sources
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return withFile(gctx, SourceCompanies, files.Companies, func(r io.Reader) (err error) {
			src.Companies, err = ParseCompanies(r)
			return err
		})
	})
	g.Go(func() error {
		return withFile(gctx, SourcePeople, files.People, func(r io.Reader) (err error) {
			src.People, err = ParsePeople(r)
			return err
		})
	})
	g.Go(func() error {
		return withFile(gctx, SourceFoods, files.Foods, func(r io.Reader) (err error) {
			src.Categories, err = ParseFoodCategories(r)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &src, nil
}

// withFile opens path and hands parse a reader that stops once ctx is done
func withFile(ctx context.Context, source, path string, parse func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return apperrors.NewMalformedInput(source, -1, err)
	}
	defer f.Close()

	if err := parse(&contextReader{ctx: ctx, r: f}); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// Build runs the entity builder, reference resolver and friendship
// reconciler over parsed sources. It does not touch storage.
func (im *Importer) Build(src *Sources) (*model.Dataset, *Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.New()}
	log := im.logger.With(zap.String("run_id", summary.RunID.String()))

	ds := model.NewDataset()

	if err := buildCompanies(src.Companies, ds); err != nil {
		return nil, nil, im.fail(log, "build companies", err)
	}
	metrics.RecordImported(SourceCompanies, src.Companies.Len())
	log.Debug("Companies built", zap.Int("companies", len(ds.Companies)))

	people := newPeopleBuilder(ds, src.Categories)
	if err := people.build(src.People); err != nil {
		return nil, nil, im.fail(log, "build people", err)
	}
	metrics.RecordImported(SourcePeople, src.People.Len())
	log.Debug("People built",
		zap.Int("people", len(ds.People)),
		zap.Int("foods", len(ds.Foods)),
	)

	graph, stats := reconcileFriendships(people.claims)
	ds.Friends = graph
	log.Debug("Friendships reconciled",
		zap.Int("confirmed", stats.Confirmed),
		zap.Int("one_sided", stats.OneSided),
		zap.Int("dangling", stats.Dangling),
	)

	summary.Companies = len(ds.Companies)
	summary.People = len(ds.People)
	summary.Foods = len(ds.Foods)
	summary.Friendships = graph.Len()
	summary.Claims = stats
	summary.Duration = time.Since(start)
	return ds, summary, nil
}

// Import loads the files, builds the dataset and saves it in one batch.
// Nothing is written unless every stage succeeded.
func (im *Importer) Import(ctx context.Context, files Files) (*Summary, error) {
	start := time.Now()

	src, err := LoadFiles(ctx, files)
	if err != nil {
		return nil, im.fail(im.logger, "load files", err)
	}

	ds, summary, err := im.Build(src)
	if err != nil {
		return nil, err
	}

	if im.writer != nil {
		if err := im.writer.SaveAll(ctx, ds); err != nil {
			metrics.ImportFailed("store")
			return nil, fmt.Errorf("save dataset: %w", err)
		}
	}

	summary.Duration = time.Since(start)
	metrics.ImportSucceeded(summary.Duration, summary.Friendships)

	im.logger.Info("Import complete",
		zap.String("run_id", summary.RunID.String()),
		zap.Int("companies", summary.Companies),
		zap.Int("people", summary.People),
		zap.Int("foods", summary.Foods),
		zap.Int("friendships", summary.Friendships),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (im *Importer) fail(log *zap.Logger, stage string, err error) error {
	metrics.ImportFailed(failureReason(err))
	log.Error("Import aborted", zap.String("stage", stage), zap.Error(err))
	return fmt.Errorf("%s: %w", stage, err)
}

func failureReason(err error) string {
	var (
		malformed *apperrors.MalformedInputError
		duplicate *apperrors.DuplicateIdentifierError
		unknown   *apperrors.UnknownReferenceError
	)
	switch {
	case errors.As(err, &malformed):
		return "malformed_input"
	case errors.As(err, &duplicate):
		return "duplicate_identifier"
	case errors.As(err, &unknown):
		return "unknown_reference"
	}
	return "other"
}
