package importapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/storelaunch/backend/internal/domain/pricing"
	"github.com/storelaunch/backend/internal/domain/shared"
	csvimport "github.com/storelaunch/backend/internal/infrastructure/import"
	"go.uber.org/zap"
)

// Column names of the ingredients-master template
const (
	ColCategory    = "Category"
	ColKoreanName  = "Korean Name"
	ColEnglishName = "English Name"
	ColQuantity    = "Quantity"
	ColUnit        = "Unit"
	ColYieldRate   = "Yield Rate (%)"
)

// MaxReportedErrors caps the row errors returned to the caller
const MaxReportedErrors = 100

// IngredientImportResult summarizes an ingredient master import
type IngredientImportResult struct {
	Created     int                  `json:"created"`
	Updated     int                  `json:"updated"`
	Errors      []csvimport.RowError `json:"errors"`
	TotalErrors int                  `json:"totalErrors,omitempty"`
}

// IngredientImportService upserts ingredient masters from the master CSV
type IngredientImportService struct {
	ingredientRepo pricing.IngredientRepository
	logger         *zap.Logger
}

// NewIngredientImportService creates a new IngredientImportService
func NewIngredientImportService(ingredientRepo pricing.IngredientRepository, logger *zap.Logger) *IngredientImportService {
	return &IngredientImportService{ingredientRepo: ingredientRepo, logger: logger}
}

// ValidationRules returns the per-row rules of the master import
func (s *IngredientImportService) ValidationRules() []csvimport.FieldRule {
	zero := decimal.Zero
	return []csvimport.FieldRule{
		csvimport.Field(ColEnglishName).Required().MaxLength(200).Unique().Build(),
		csvimport.Field(ColKoreanName).MaxLength(200).Build(),
		csvimport.Field(ColCategory).MaxLength(100).Build(),
		csvimport.Field(ColUnit).MaxLength(20).Build(),
		csvimport.Field(ColQuantity).Decimal().Range(zero, decimal.NewFromInt(1_000_000)).Build(),
		csvimport.Field(ColYieldRate).Decimal().Range(zero, pricing.FullYield).Build(),
	}
}

// Import reads the CSV and upserts each valid row by english name. Rows that
// fail validation are reported and skipped; the rest of the file still imports.
func (s *IngredientImportService) Import(ctx context.Context, r io.Reader) (*IngredientImportResult, error) {
	parser, err := csvimport.NewCSVParser(r)
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.InvalidInput(err.Error())
	}
	if missing := parser.ValidateHeaders([]string{ColEnglishName}); len(missing) > 0 {
		return nil, shared.InvalidInput("Missing required columns: " + strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.InvalidInput(err.Error())
	}

	errs := csvimport.NewErrorCollection(MaxReportedErrors)
	validator := csvimport.NewFieldValidator(errs, s.ValidationRules()...)
	result := &IngredientImportResult{}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !validator.ValidateRow(row) {
			continue
		}
		created, err := s.upsertRow(ctx, row)
		if err != nil {
			var domainErr *shared.DomainError
			if !errors.As(err, &domainErr) {
				return nil, fmt.Errorf("import row %d: %w", row.LineNumber, err)
			}
			errs.AddMessage(row.LineNumber, domainErr.Message)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.Errors = errs.Errors()
	if errs.IsTruncated() {
		result.TotalErrors = errs.TotalCount()
	}

	s.logger.Info("Ingredient masters imported",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", errs.TotalCount()),
	)
	return result, nil
}

func (s *IngredientImportService) upsertRow(ctx context.Context, row *csvimport.Row) (bool, error) {
	in := pricing.IngredientInput{
		Category:    row.Get(ColCategory),
		KoreanName:  row.Get(ColKoreanName),
		EnglishName: row.Get(ColEnglishName),
		Quantity:    csvimport.DecimalOr(row, ColQuantity, decimal.Zero),
		Unit:        row.Get(ColUnit),
		YieldRate:   csvimport.DecimalOr(row, ColYieldRate, pricing.FullYield),
	}

	existing, err := s.ingredientRepo.FindByEnglishName(ctx, in.EnglishName)
	switch {
	case err == nil:
		if err := existing.Apply(in); err != nil {
			return false, err
		}
		return false, s.ingredientRepo.Update(ctx, existing)
	case !errors.Is(err, shared.ErrNotFound):
		return false, err
	}

	ing, err := pricing.NewIngredientMaster(in)
	if err != nil {
		return false, err
	}
	return true, s.ingredientRepo.Create(ctx, ing)
}
