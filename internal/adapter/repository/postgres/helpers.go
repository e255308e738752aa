package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/iho/budgeteer/internal/usecase"
)

// txOf unwraps the pgx transaction carried by a usecase.Tx.
func txOf(tx usecase.Tx) pgx.Tx {
	return tx.(*Tx).PgxTx()
}

func collectList[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	return out, rows.Err()
}
