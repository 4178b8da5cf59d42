// Package postgres implements the Store interface on PostgreSQL via pgx.
package postgres

const schemaDDL = `
CREATE TABLE IF NOT EXISTS machines (
    id                TEXT PRIMARY KEY,
    name              TEXT NOT NULL,
    type              TEXT,
    status            TEXT NOT NULL,
    limits            JSONB,
    health_score      DOUBLE PRECISION NOT NULL DEFAULT 0,
    fault_probability DOUBLE PRECISION NOT NULL DEFAULT 0,
    anomaly_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
    location          TEXT,
    updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sensor_readings (
    id             BIGSERIAL PRIMARY KEY,
    machine_id     TEXT NOT NULL,
    vibration      DOUBLE PRECISION NOT NULL,
    temperature    DOUBLE PRECISION NOT NULL,
    acoustic_noise DOUBLE PRECISION NOT NULL,
    load_pct       DOUBLE PRECISION NOT NULL,
    rpm            DOUBLE PRECISION NOT NULL,
    timestamp      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_machine_ts ON sensor_readings (machine_id, timestamp);

CREATE TABLE IF NOT EXISTS spare_parts (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    current_quantity INTEGER NOT NULL,
    min_quantity     INTEGER NOT NULL,
    max_quantity     INTEGER NOT NULL,
    lead_time_days   DOUBLE PRECISION NOT NULL,
    status           TEXT NOT NULL,
    supplier_id      TEXT
);

CREATE TABLE IF NOT EXISTS suppliers (
    id                     TEXT PRIMARY KEY,
    name                   TEXT NOT NULL,
    reliability_score      DOUBLE PRECISION NOT NULL,
    average_lead_time_days DOUBLE PRECISION NOT NULL,
    on_time_delivery_rate  DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS supply_risk (
    part_id                 TEXT PRIMARY KEY,
    id                      TEXT NOT NULL,
    supplier_id             TEXT,
    risk_level              TEXT NOT NULL,
    risk_score              DOUBLE PRECISION NOT NULL,
    predicted_delay_days    DOUBLE PRECISION NOT NULL,
    stockout_probability    DOUBLE PRECISION NOT NULL,
    estimated_stockout_date TIMESTAMPTZ,
    inventory_level_percent DOUBLE PRECISION NOT NULL,
    supplier_reliability    DOUBLE PRECISION NOT NULL,
    recommended_action      TEXT NOT NULL,
    all_recommendations     JSONB,
    urgency                 TEXT NOT NULL,
    created_at              TIMESTAMPTZ NOT NULL,
    updated_at              TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_supply_risk_level ON supply_risk (risk_level);
`
