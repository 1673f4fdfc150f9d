package users

const (
	queryInsertUser = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO NOTHING
		RETURNING email, created_at
	`

	queryFindCredentials = `
		SELECT email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	queryFindByEmail = `
		SELECT email, created_at
		FROM users
		WHERE email = $1
	`

	queryUpgradeHash = `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE email = $2 AND password_hash = $3
	`
)
