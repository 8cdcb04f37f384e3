package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
)

//go:embed 0002_create_search.sql
var createSearchSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createSearchSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TRIGGER IF EXISTS subjects_search_tsv ON subjects;
				DROP TRIGGER IF EXISTS chapters_search_tsv ON chapters;
				DROP TRIGGER IF EXISTS quizzes_search_tsv ON quizzes;
				DROP TRIGGER IF EXISTS users_search_tsv ON users;
				DROP FUNCTION IF EXISTS subjects_search_tsv_update();
				DROP FUNCTION IF EXISTS chapters_search_tsv_update();
				DROP FUNCTION IF EXISTS quizzes_search_tsv_update();
				DROP FUNCTION IF EXISTS users_search_tsv_update();
				ALTER TABLE subjects DROP COLUMN IF EXISTS search_tsv;
				ALTER TABLE chapters DROP COLUMN IF EXISTS search_tsv;
				ALTER TABLE quizzes DROP COLUMN IF EXISTS search_tsv;
				ALTER TABLE users DROP COLUMN IF EXISTS search_tsv;
			`)
			return err
		},
	)
}
