package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// BusinessRepository is the Postgres adapter for the canonical data ports:
// BusinessDataStore plus review and photo listing. Structured columns hold
// scalar fields; hours, amenities and categories ride in JSONB.
type BusinessRepository struct {
	db *sql.DB
}

func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *BusinessRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS businesses (
	business_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	price_range TEXT NOT NULL DEFAULT '',
	hours JSONB NOT NULL DEFAULT '[]'::jsonb,
	amenities JSONB NOT NULL DEFAULT '{}'::jsonb,
	categories JSONB NOT NULL DEFAULT '[]'::jsonb,
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS reviews (
	review_id TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT '',
	rating DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_text TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS photos (
	photo_id TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	url TEXT NOT NULL DEFAULT '',
	caption TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_reviews_business_id ON reviews(business_id);
CREATE INDEX IF NOT EXISTS idx_photos_business_id ON photos(business_id);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Get returns (nil, nil) for an unknown business so search services can
// surface empty results instead of errors.
func (r *BusinessRepository) Get(ctx context.Context, businessID string) (*domain.BusinessData, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT business_id, name, address, phone, price_range, hours, amenities, categories, rating, review_count
FROM businesses
WHERE business_id = $1
`, businessID)

	var business domain.BusinessData
	var hoursRaw, amenitiesRaw, categoriesRaw []byte

	err := row.Scan(
		&business.BusinessID, &business.Name, &business.Address, &business.Phone,
		&business.PriceRange, &hoursRaw, &amenitiesRaw, &categoriesRaw,
		&business.Rating, &business.ReviewCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan business: %w", err)
	}

	if err := json.Unmarshal(hoursRaw, &business.Hours); err != nil {
		return nil, fmt.Errorf("unmarshal hours: %w", err)
	}
	if err := json.Unmarshal(amenitiesRaw, &business.Amenities); err != nil {
		return nil, fmt.Errorf("unmarshal amenities: %w", err)
	}
	if err := json.Unmarshal(categoriesRaw, &business.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return &business, nil
}

func (r *BusinessRepository) Upsert(ctx context.Context, business domain.BusinessData) error {
	hoursJSON, err := json.Marshal(business.Hours)
	if err != nil {
		return fmt.Errorf("marshal hours: %w", err)
	}
	amenitiesJSON, err := json.Marshal(business.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}
	categoriesJSON, err := json.Marshal(business.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO businesses (business_id, name, address, phone, price_range, hours, amenities, categories, rating, review_count)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (business_id) DO UPDATE SET
	name = EXCLUDED.name,
	address = EXCLUDED.address,
	phone = EXCLUDED.phone,
	price_range = EXCLUDED.price_range,
	hours = EXCLUDED.hours,
	amenities = EXCLUDED.amenities,
	categories = EXCLUDED.categories,
	rating = EXCLUDED.rating,
	review_count = EXCLUDED.review_count
`,
		business.BusinessID, business.Name, business.Address, business.Phone,
		business.PriceRange, hoursJSON, amenitiesJSON, categoriesJSON,
		business.Rating, business.ReviewCount,
	)
	if err != nil {
		return fmt.Errorf("upsert business: %w", err)
	}
	return nil
}

// ReviewRepository lists reviews for a business, newest ingested last.
type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT review_id, business_id, user_id, rating, review_text
FROM reviews
WHERE business_id = $1
ORDER BY review_id
`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(&review.ReviewID, &review.BusinessID, &review.UserID, &review.Rating, &review.Text); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT photo_id, business_id, url, caption
FROM photos
WHERE business_id = $1
ORDER BY photo_id
`, businessID)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	photos := []domain.Photo{}
	for rows.Next() {
		var photo domain.Photo
		if err := rows.Scan(&photo.PhotoID, &photo.BusinessID, &photo.URL, &photo.Caption); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}
