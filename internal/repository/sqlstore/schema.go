package sqlstore

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(20) NOT NULL UNIQUE,
		full_name VARCHAR(50) NOT NULL DEFAULT '',
		password VARCHAR(128) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		modified_at DATETIME(6) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(225) NOT NULL,
		content TEXT NOT NULL,
		author_id BIGINT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		modified_at DATETIME(6) NOT NULL,
		FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		username VARCHAR(20) NOT NULL UNIQUE,
		full_name VARCHAR(50) NOT NULL DEFAULT '',
		password VARCHAR(128) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		modified_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		title VARCHAR(225) NOT NULL,
		content TEXT NOT NULL,
		author_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		modified_at TIMESTAMPTZ NOT NULL
	)`,
}
