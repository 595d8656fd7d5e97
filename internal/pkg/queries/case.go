package queries

const caseColumns = `
		id, user_email, patient_name, symptoms, target_city, target_hospital, passport_url,
		status, stage1_paid, stage2_status, stage2_auth_id, stage2_authorized_at, stage3_status,
		companion_request, payment_reports, created_at, updated_at
`

const (
	GetCaseByID = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE id = $1
	`

	GetCaseByIDForUpdate = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE id = $1
		FOR UPDATE
	`

	GetLatestUnpaidDraftByEmail = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE lower(user_email) = lower($1) AND stage1_paid = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	GetLatestUnpaidDraftByEmailForUpdate = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE lower(user_email) = lower($1) AND stage1_paid = FALSE
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE
	`

	GetLatestCaseByEmail = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE lower(user_email) = lower($1)
		ORDER BY created_at DESC
		LIMIT 1
	`

	GetAllCases = `
		SELECT` + caseColumns + `
		FROM cases
		ORDER BY created_at DESC
	`

	GetCasesAuthorizedBefore = `
		SELECT` + caseColumns + `
		FROM cases
		WHERE stage2_status = 'authorized' AND stage2_authorized_at < $1
		ORDER BY stage2_authorized_at ASC
	`

	// Serialises draft creation per email inside the surrounding transaction.
	LockDraftsForEmail = `SELECT pg_advisory_xact_lock(hashtext(lower($1)))`

	InsertCase = `
		INSERT INTO cases (` + caseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	UpdateCase = `
		UPDATE cases
		SET patient_name = $2, symptoms = $3, target_city = $4, target_hospital = $5, passport_url = $6,
			status = $7, stage1_paid = $8, stage2_status = $9, stage2_auth_id = $10, stage2_authorized_at = $11,
			stage3_status = $12, companion_request = $13, payment_reports = $14, updated_at = $15
		WHERE id = $1
	`
)
