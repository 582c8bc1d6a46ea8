package domain

// Client is an entry of the operator's customer registry.
type Client struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	IDDocument string `json:"id_document"`
	License    string `json:"license"`
	CreatedOn  string `json:"created_on"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedOn string `json:"created_on"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Requests int64 `json:"requests"`
	Clients  int64 `json:"clients"`
	Vehicles int64 `json:"vehicles"`
}
