package postgres

import (
	"context"
	"fmt"
)

// schema se aplica al arrancar; todas las sentencias son idempotentes.
// customer_bills se crea después de customers por la FK.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT        NOT NULL CHECK (name <> ''),
    base_bill       BIGINT      NOT NULL,
    whatsapp_number TEXT        NOT NULL DEFAULT '',
    due_date_day    SMALLINT    NOT NULL CHECK (due_date_day BETWEEN 1 AND 31),
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customer_bills (
    customer_id   BIGINT  NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
    payment_month TEXT    NOT NULL,
    status        TEXT    NOT NULL CHECK (status IN ('PAID', 'UNPAID')),
    payment_date  DATE,
    due_date      DATE    NOT NULL,
    base_bill     BIGINT  NOT NULL,
    PRIMARY KEY (customer_id, payment_month)
);

CREATE INDEX IF NOT EXISTS idx_customers_lower_name ON customers (LOWER(name));
`

// Migrate crea las tablas del roster si no existen.
func Migrate(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
