package database

import "context"

// GetAlertRecipients returns the email addresses of active users. An empty
// result is not an error; the caller falls back to the admin address.
func (d *Database) GetAlertRecipients(ctx context.Context) ([]string, error) {
	rows, err := d.querier(ctx).QueryContext(ctx, `
		SELECT email
		FROM users
		WHERE email IS NOT NULL AND email != '' AND is_active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, nil
}
