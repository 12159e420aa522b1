package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veraticus/museum-pulse/internal/model"
)

// SaveReviews inserts reviews in one transaction. Rows with an existing id
// are replaced.
func (s *SQLiteStorage) SaveReviews(ctx context.Context, reviews []model.LabeledReview) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReviews(reviews); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO reviews (
			id, title, text, review_text, hometown, city, region, country,
			tourist_type, rating, year, month, day, date, emotion, sentiment,
			textblob_score, vader_score, composite_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range reviews {
		var date, emotion sql.NullString
		if d := r.Date(); !d.IsZero() {
			date = sql.NullString{String: d.Format("2006-01-02"), Valid: true}
		}
		if r.HasEmotion() {
			emotion = sql.NullString{String: r.Emotion, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			r.ID,
			r.Title,
			r.Text,
			r.ReviewText,
			r.Hometown,
			r.City,
			r.Region,
			r.Country,
			string(r.TouristType),
			r.Rating,
			r.Year,
			r.Month,
			r.Day,
			date,
			emotion,
			string(r.Sentiment),
			r.TextBlobScore,
			r.VaderScore,
			r.CompositeScore,
		); err != nil {
			return fmt.Errorf("failed to insert review %d: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetReviewCount returns the number of stored reviews.
func (s *SQLiteStorage) GetReviewCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return count, nil
}
