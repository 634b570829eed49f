package league

import "github.com/google/uuid"

// Org is the organization running a league. Each org is addressed by its
// subdomain; handlers resolve the org from the request host and pass it down
// explicitly.
type Org struct {
	ID        uuid.UUID `db:"id"`
	Subdomain string    `db:"subdomain"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
}
