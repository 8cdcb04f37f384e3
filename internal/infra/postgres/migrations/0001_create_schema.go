package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
)

//go:embed 0001_create_schema.sql
var createSchemaSQL string

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(createSchemaSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.Exec(`
				DROP TABLE IF EXISTS question_attempts;
				DROP TABLE IF EXISTS scores;
				DROP TABLE IF EXISTS quiz_signups;
				DROP TABLE IF EXISTS questions;
				DROP TABLE IF EXISTS quizzes;
				DROP TABLE IF EXISTS chapters;
				DROP TABLE IF EXISTS subjects;
				DROP TABLE IF EXISTS users;
			`)
			return err
		},
	)
}
