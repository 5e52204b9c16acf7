package storage

import "ecom-intel/models"

// ReviewStore is the persistence interface the pipeline depends on.
// Everything is keyed by product, and a product is keyed by its URL.
type ReviewStore interface {
	GetOrCreateProduct(url, title string) (int64, error)
	AddReviews(productID int64, records []*models.ReviewRecord) (int, error)
	SaveAnalysis(productID int64, result *models.AnalysisResult) error
	Reviews(productID int64) ([]*models.ReviewRecord, error)
	Analysis(productID int64) (*models.AnalysisResult, error)
	RecentProducts(limit int) ([]*models.ProductOverview, error)
	Close() error
}

// RawRecordWriter is the interface for persisting extracted records
// before deduplication and analysis.
type RawRecordWriter interface {
	WriteRaw(records []*models.ReviewRecord) error
	Close() error
}
