package casestore

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"umbodsmadur-scraper/lib/casestore/db"
)

type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

type Paragraph struct {
	Index         int    `json:"index"`
	ParagraphText string `json:"paragraphText"`
}

// Case is the stored shape of one scraped case, keyed by CaseNumber.
type Case struct {
	CaseNumber  string
	Year        *int
	Title       string
	Type        string
	OriginalUrl string
	Abstract    string
	Content     []Paragraph
	FullText    string
}

// Upsert writes the batch in a single transaction. Writing a case number
// that already exists overwrites the stored row with the new field values.
func (s Store) Upsert(ctx context.Context, cases []Case) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	for _, c := range cases {
		content, err := json.Marshal(c.Content)
		if err != nil {
			return err
		}

		var year sql.NullInt64
		if c.Year != nil {
			year = sql.NullInt64{Int64: int64(*c.Year), Valid: true}
		}

		err = txqry.UpsertCase(ctx, db.UpsertCaseParams{
			CaseNumber:  c.CaseNumber,
			Year:        year,
			Title:       c.Title,
			Type:        c.Type,
			OriginalUrl: c.OriginalUrl,
			Abstract:    c.Abstract,
			Content:     string(content),
			FullText:    c.FullText,
		})
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get returns the stored case for a case number, or ok = false when the
// case number has never been stored.
func (s Store) Get(ctx context.Context, caseNumber string) (Case, bool, error) {
	row, err := s.qry.GetCase(ctx, caseNumber)
	if err == sql.ErrNoRows {
		return Case{}, false, nil
	}
	if err != nil {
		return Case{}, false, err
	}
	c, err := fromRow(row)
	return c, true, err
}

func (s Store) List(ctx context.Context) ([]Case, error) {
	rows, err := s.qry.ListCases(ctx)
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(rows))
	for _, row := range rows {
		c, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (s Store) Count(ctx context.Context) (int64, error) {
	return s.qry.CountCases(ctx)
}

func fromRow(row db.Case) (Case, error) {
	var content []Paragraph
	err := json.Unmarshal([]byte(row.Content), &content)
	if err != nil {
		return Case{}, err
	}

	var year *int
	if row.Year.Valid {
		y := int(row.Year.Int64)
		year = &y
	}

	return Case{
		CaseNumber:  row.CaseNumber,
		Year:        year,
		Title:       row.Title,
		Type:        row.Type,
		OriginalUrl: row.OriginalUrl,
		Abstract:    row.Abstract,
		Content:     content,
		FullText:    row.FullText,
	}, nil
}
