package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"ecom-intel/models"
)

// PostgresStore persists products, reviews and analysis results.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id         SERIAL PRIMARY KEY,
			url        TEXT UNIQUE NOT NULL,
			title      TEXT NOT NULL DEFAULT '',
			brand      TEXT NOT NULL DEFAULT '',
			price      TEXT NOT NULL DEFAULT '',
			image_url  TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id              SERIAL PRIMARY KEY,
			product_id      INTEGER NOT NULL REFERENCES products(id),
			review_text     TEXT NOT NULL,
			rating          NUMERIC(4,2) NOT NULL DEFAULT 0,
			reviewer_name   TEXT NOT NULL DEFAULT '',
			review_date     TEXT NOT NULL DEFAULT '',
			source_url      TEXT NOT NULL DEFAULT '',
			sentiment_score NUMERIC(4,3) NOT NULL DEFAULT 0,
			sentiment_label TEXT NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (product_id, review_text, reviewer_name)
		);

		CREATE TABLE IF NOT EXISTS analysis (
			id                     SERIAL PRIMARY KEY,
			product_id             INTEGER NOT NULL REFERENCES products(id),
			sentiment_distribution JSONB NOT NULL DEFAULT '{}',
			key_insights           JSONB NOT NULL DEFAULT '[]',
			pros                   JSONB NOT NULL DEFAULT '[]',
			cons                   JSONB NOT NULL DEFAULT '[]',
			recommendations        JSONB NOT NULL DEFAULT '[]',
			rating_summary         JSONB NOT NULL DEFAULT '{}',
			total_reviews          INTEGER NOT NULL DEFAULT 0,
			average_rating         NUMERIC(4,2) NOT NULL DEFAULT 0,
			created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_product  ON reviews(product_id);
		CREATE INDEX IF NOT EXISTS idx_analysis_product ON analysis(product_id);
	`)
	return err
}

// GetOrCreateProduct upserts a product by URL and returns its id. The
// title is only written when the product is new or the column is empty.
func (s *PostgresStore) GetOrCreateProduct(url, title string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`
		INSERT INTO products (url, title)
		VALUES ($1, $2)
		ON CONFLICT (url) DO UPDATE
			SET title      = COALESCE(NULLIF(products.title, ''), EXCLUDED.title),
			    updated_at = NOW()
		RETURNING id
	`, url, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: get or create product: %w", err)
	}
	return id, nil
}

// AddReviews batch-inserts records for a product, skipping reviews that
// already exist with the same text and reviewer. Returns how many rows
// were actually added.
func (s *PostgresStore) AddReviews(productID int64, records []*models.ReviewRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	const batchSize = 50
	added := 0
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		n, err := s.insertBatch(productID, records[i:end])
		if err != nil {
			return added, err
		}
		added += n
	}
	return added, nil
}

func (s *PostgresStore) insertBatch(productID int64, batch []*models.ReviewRecord) (int, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*8)

	for idx, r := range batch {
		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		valueArgs = append(valueArgs,
			productID, r.Text, r.Rating, r.ReviewerName, r.ReviewDate,
			r.SourceURL, r.SentimentScore, r.SentimentLabel)
	}

	query := fmt.Sprintf(`
		INSERT INTO reviews
			(product_id, review_text, rating, reviewer_name, review_date,
			 source_url, sentiment_score, sentiment_label)
		VALUES %s
		ON CONFLICT (product_id, review_text, reviewer_name) DO NOTHING
	`, strings.Join(valueStrings, ","))

	res, err := s.db.Exec(query, valueArgs...)
	if err != nil {
		return 0, fmt.Errorf("postgres: insert reviews: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("postgres: rows affected: %w", err)
	}
	return int(n), nil
}

// SaveAnalysis replaces any previous analysis for the product with the
// given result.
func (s *PostgresStore) SaveAnalysis(productID int64, result *models.AnalysisResult) error {
	sentiment, err := json.Marshal(result.Sentiment)
	if err != nil {
		return fmt.Errorf("postgres: encode sentiment: %w", err)
	}
	ratings, err := json.Marshal(result.Ratings)
	if err != nil {
		return fmt.Errorf("postgres: encode rating summary: %w", err)
	}

	insights, _ := json.Marshal(emptyIfNil(result.KeyInsights))
	pros, _ := json.Marshal(emptyIfNil(result.Pros))
	cons, _ := json.Marshal(emptyIfNil(result.Cons))
	recs, _ := json.Marshal(emptyIfNil(result.Recommendations))

	if _, err := s.db.Exec(`DELETE FROM analysis WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("postgres: clear analysis: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO analysis
			(product_id, sentiment_distribution, key_insights, pros, cons,
			 recommendations, rating_summary, total_reviews, average_rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, productID, sentiment, insights, pros, cons, recs, ratings,
		result.TotalReviews, result.AverageRating)
	if err != nil {
		return fmt.Errorf("postgres: save analysis: %w", err)
	}
	return nil
}

// Reviews retrieves all stored reviews for a product.
func (s *PostgresStore) Reviews(productID int64) ([]*models.ReviewRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, review_text, rating, reviewer_name, review_date,
		       source_url, sentiment_score, sentiment_label, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch reviews: %w", err)
	}
	defer rows.Close()

	var records []*models.ReviewRecord
	for rows.Next() {
		r := &models.ReviewRecord{}
		if err := rows.Scan(
			&r.ID, &r.ProductID, &r.Text, &r.Rating, &r.ReviewerName,
			&r.ReviewDate, &r.SourceURL, &r.SentimentScore, &r.SentimentLabel,
			&r.ExtractedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan review: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Analysis retrieves the latest stored analysis for a product, or nil
// when none exists.
func (s *PostgresStore) Analysis(productID int64) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	var sentiment, ratings, insights, pros, cons, recs []byte
	err := s.db.QueryRow(`
		SELECT sentiment_distribution, key_insights, pros, cons,
		       recommendations, rating_summary, total_reviews, average_rating
		FROM analysis
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, productID).Scan(&sentiment, &insights, &pros, &cons, &recs, &ratings,
		&result.TotalReviews, &result.AverageRating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch analysis: %w", err)
	}

	if err := json.Unmarshal(sentiment, &result.Sentiment); err != nil {
		return nil, fmt.Errorf("postgres: decode sentiment: %w", err)
	}
	if err := json.Unmarshal(ratings, &result.Ratings); err != nil {
		return nil, fmt.Errorf("postgres: decode rating summary: %w", err)
	}
	_ = json.Unmarshal(insights, &result.KeyInsights)
	_ = json.Unmarshal(pros, &result.Pros)
	_ = json.Unmarshal(cons, &result.Cons)
	_ = json.Unmarshal(recs, &result.Recommendations)

	return &result, nil
}

// RecentProducts lists the most recently analyzed products, newest first.
func (s *PostgresStore) RecentProducts(limit int) ([]*models.ProductOverview, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.url, p.title, p.brand,
		       COALESCE(a.total_reviews, 0), COALESCE(a.average_rating, 0),
		       p.created_at
		FROM products p
		LEFT JOIN analysis a ON p.id = a.product_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch recent products: %w", err)
	}
	defer rows.Close()

	var products []*models.ProductOverview
	for rows.Next() {
		p := &models.ProductOverview{}
		if err := rows.Scan(&p.ID, &p.URL, &p.Title, &p.Brand,
			&p.TotalReviews, &p.AverageRating, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
