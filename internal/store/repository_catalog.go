package store

import (
	"context"
	"fmt"

	"recipebox/internal/logger"
	"recipebox/models"
)

// catalogRepository is the PostgreSQL-backed implementation of
// [CatalogRepository]. One instance serves exactly one catalog kind; the
// kind supplies the table, id column, and recipe link table names to the
// query builders, so tags and ingredients share all of the code below.
type catalogRepository struct {
	*DB
	kind   models.CatalogKind
	logger *logger.Logger
}

// NewCatalogRepository constructs a [CatalogRepository] for the given kind
// backed by the provided database connection and logger.
func NewCatalogRepository(db *DB, kind models.CatalogKind, logger *logger.Logger) CatalogRepository {
	logger.Debug().Str("kind", string(kind)).Msg("creating catalog repository")
	return &catalogRepository{
		DB:     db,
		kind:   kind,
		logger: logger,
	}
}

// ListOwned returns the owner's catalog entries ordered by name descending.
//
// With assignedOnly set, the query joins the recipe link table and
// de-duplicates, so entries referenced by several recipes still appear
// exactly once and entries referenced by none are excluded.
func (p *catalogRepository) ListOwned(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.CatalogItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCatalogQuery(p.kind, ownerID, assignedOnly)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ListOwned").
			Str("kind", string(p.kind)).
			Int64("user_id", ownerID).
			Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.ListOwned").
			Str("kind", string(p.kind)).
			Int64("user_id", ownerID).
			Bool("assigned_only", assignedOnly).
			Msg("failed to execute catalog listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.CatalogItem, 0, 20)

	for rows.Next() {
		var item models.CatalogItem

		if scanErr := rows.Scan(&item.ID, &item.UserID, &item.Name); scanErr != nil {
			log.Err(scanErr).
				Str("func", "catalogRepository.ListOwned").
				Int64("user_id", ownerID).
				Msg("failed to scan catalog row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "catalogRepository.ListOwned").
			Int64("user_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Create persists a new catalog entry owned by item.UserID and returns the
// stored row.
func (p *catalogRepository) Create(ctx context.Context, item models.CatalogItem) (models.CatalogItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateCatalogQuery(p.kind, item)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.Create").
			Str("kind", string(p.kind)).
			Msg("failed to create query")
		return models.CatalogItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.CatalogItem
	row := p.DB.QueryRowContext(ctx, query, args...)
	if scanErr := row.Scan(&created.ID, &created.UserID, &created.Name); scanErr != nil {
		log.Err(scanErr).
			Str("func", "catalogRepository.Create").
			Str("kind", string(p.kind)).
			Int64("user_id", item.UserID).
			Bool("retryable", p.errorClassificator.Classify(scanErr) == Retryable).
			Msg("failed to insert catalog item")
		return models.CatalogItem{}, fmt.Errorf("%w: %w", ErrCatalogItemNotSaved, scanErr)
	}

	return created, nil
}

// CountOwned returns how many of the given identifiers exist in the
// catalog's table and belong to ownerID. An empty id list counts zero.
func (p *catalogRepository) CountOwned(ctx context.Context, ownerID int64, ids []int64) (int, error) {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := buildCountOwnedCatalogQuery(p.kind, ownerID, ids)
	if err != nil {
		log.Err(err).
			Str("func", "catalogRepository.CountOwned").
			Str("kind", string(p.kind)).
			Msg("failed to create query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if scanErr := p.DB.QueryRowContext(ctx, query, args...).Scan(&count); scanErr != nil {
		log.Err(scanErr).
			Str("func", "catalogRepository.CountOwned").
			Str("kind", string(p.kind)).
			Int64("user_id", ownerID).
			Msg("failed to count owned catalog items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return count, nil
}
