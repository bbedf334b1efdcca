package models

// DefaultContractedPosts is the monthly quota used when a client has none configured.
const DefaultContractedPosts = 12

// DefaultFormat is the format assigned to generated posts.
const DefaultFormat = "Post"

// UnknownClientName is displayed for posts whose client no longer exists.
const UnknownClientName = "Desconhecido"

// ClientStatus is the contract state of a client.
type ClientStatus string

const (
	ClientActive    ClientStatus = "Ativo"
	ClientInactive  ClientStatus = "Inativo"
	ClientCompleted ClientStatus = "Concluído"
)

// Valid reports whether s is one of the known client states.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientCompleted:
		return true
	}
	return false
}

// Network is the social network a post is published on.
type Network string

const (
	NetworkInstagram Network = "Instagram"
	NetworkLinkedIn  Network = "LinkedIn"
	NetworkTikTok    Network = "TikTok"
	NetworkFacebook  Network = "Facebook"
)

// Networks lists the supported networks in display order.
var Networks = []Network{NetworkInstagram, NetworkLinkedIn, NetworkTikTok, NetworkFacebook}

// Valid reports whether n is a supported network.
func (n Network) Valid() bool {
	for _, known := range Networks {
		if n == known {
			return true
		}
	}
	return false
}

// Client is an agency customer with a monthly post quota.
type Client struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Industry        string       `json:"industry"`
	ContractedPosts int          `json:"contractedPosts"`
	AvatarURL       string       `json:"avatarUrl,omitempty"`
	StartDate       Date         `json:"startDate"`
	Status          ClientStatus `json:"status"`
}

// PostsPerMonth returns the contracted quota, falling back to DefaultContractedPosts
// when the stored value is missing or not positive.
func (c Client) PostsPerMonth() int {
	if c.ContractedPosts <= 0 {
		return DefaultContractedPosts
	}
	return c.ContractedPosts
}

// IsActive reports whether the client takes part in bulk generation.
func (c Client) IsActive() bool {
	return c.Status == ClientActive
}

// Post is a single piece of content on the calendar.
type Post struct {
	ID         string  `json:"id"`
	ClientID   string  `json:"clientId"`
	Title      string  `json:"title"`
	Date       Date    `json:"date"`
	StartDate  *Date   `json:"startDate,omitempty"`
	PostNumber int     `json:"postNumber,omitempty"`
	Status     string  `json:"status"`
	Network    Network `json:"network"`
	Format     string  `json:"format"`
	Copy       string  `json:"copy,omitempty"`
	Feedback   string  `json:"feedback,omitempty"`
}

// ClientName resolves the display name of the post's client.
func ClientName(clients []Client, id string) string {
	for _, c := range clients {
		if c.ID == id {
			return c.Name
		}
	}
	return UnknownClientName
}
