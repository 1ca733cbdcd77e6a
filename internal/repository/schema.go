package repository

// Schema is the DDL of the tables owned by the dispatch service. Every
// statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS deliveries (
	id              BIGSERIAL PRIMARY KEY,
	order_id        TEXT NOT NULL UNIQUE,
	customer_id     BIGINT NOT NULL,
	owner_id        BIGINT NOT NULL,
	restaurant_id   BIGINT NOT NULL,
	pickup_address  TEXT NOT NULL DEFAULT '',
	pickup_lat      DOUBLE PRECISION NOT NULL DEFAULT 0,
	pickup_lng      DOUBLE PRECISION NOT NULL DEFAULT 0,
	dropoff_address TEXT NOT NULL DEFAULT '',
	dropoff_lat     DOUBLE PRECISION NOT NULL DEFAULT 0,
	dropoff_lng     DOUBLE PRECISION NOT NULL DEFAULT 0,
	distance_km     DOUBLE PRECISION NOT NULL DEFAULT 0,
	delivery_fee    BIGINT NOT NULL DEFAULT 0,
	driver_payout   BIGINT NOT NULL DEFAULT 0,
	commission      BIGINT NOT NULL DEFAULT 0,
	status          TEXT NOT NULL DEFAULT 'available',
	driver_id       BIGINT,
	notes           TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	claimed_at      TIMESTAMPTZ,
	picked_up_at    TIMESTAMPTZ,
	in_transit_at   TIMESTAMPTZ,
	delivered_at    TIMESTAMPTZ,
	cancelled_at    TIMESTAMPTZ,
	CONSTRAINT deliveries_driver_iff_claimed CHECK ((status = 'available') = (driver_id IS NULL))
);

CREATE INDEX IF NOT EXISTS deliveries_available_idx
	ON deliveries (created_at, id) WHERE status = 'available';

CREATE TABLE IF NOT EXISTS driver_earnings (
	id              BIGSERIAL PRIMARY KEY,
	idempotency_key TEXT NOT NULL UNIQUE,
	delivery_id     BIGINT NOT NULL REFERENCES deliveries(id),
	driver_id       BIGINT NOT NULL,
	delivery_fee    BIGINT NOT NULL,
	driver_payout   BIGINT NOT NULL,
	commission      BIGINT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS driver_stats (
	driver_id        BIGINT PRIMARY KEY,
	total_deliveries BIGINT NOT NULL DEFAULT 0,
	total_earnings   BIGINT NOT NULL DEFAULT 0,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS conversations (
	id               BIGSERIAL PRIMARY KEY,
	customer_id      BIGINT NOT NULL,
	owner_id         BIGINT NOT NULL,
	restaurant_id    BIGINT NOT NULL,
	last_message     TEXT NOT NULL DEFAULT '',
	last_sender_role TEXT NOT NULL DEFAULT '',
	last_message_at  TIMESTAMPTZ,
	customer_unread  INTEGER NOT NULL DEFAULT 0,
	owner_unread     INTEGER NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (customer_id, owner_id, restaurant_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id              BIGSERIAL PRIMARY KEY,
	conversation_id BIGINT NOT NULL REFERENCES conversations(id),
	sender_role     TEXT NOT NULL,
	sender_id       BIGINT NOT NULL,
	body            TEXT NOT NULL,
	read            BOOLEAN NOT NULL DEFAULT false,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS messages_conversation_idx ON messages (conversation_id, id);

CREATE TABLE IF NOT EXISTS notifications (
	id             BIGSERIAL PRIMARY KEY,
	recipient_role TEXT NOT NULL,
	recipient_id   BIGINT NOT NULL,
	type           TEXT NOT NULL,
	title          TEXT NOT NULL,
	body           TEXT NOT NULL DEFAULT '',
	payload        JSONB NOT NULL DEFAULT '{}'::jsonb,
	read           BOOLEAN NOT NULL DEFAULT false,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS notifications_recipient_idx
	ON notifications (recipient_role, recipient_id, id DESC);
`
