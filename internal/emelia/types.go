package emelia

// The structs below describe the shape the Emelia API is expected to
// return, not locally managed entities. Decoding is permissive: absent
// fields stay at their zero value and rendering treats zero as
// empty/unknown.

// Envelope carries the two conventional fields every response may include.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Account is the authenticated user as reported by /users/me.
type Account struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Plan      string `json:"plan"`
	Credits   int    `json:"credits"`
}

type AccountResponse struct {
	Envelope
	User *Account `json:"user"`
}

// Campaign is a cold-email campaign. Advanced (LinkedIn) campaigns share
// the same shape with a different Kind.
type Campaign struct {
	ID        string        `json:"_id"`
	Name      string        `json:"name"`
	Status    string        `json:"status"`
	Kind      string        `json:"type"`
	CreatedAt string        `json:"createdAt"`
	Stats     CampaignStats `json:"stats"`
}

type CampaignStats struct {
	Total        int `json:"total"`
	Sent         int `json:"sent"`
	Delivered    int `json:"delivered"`
	Opens        int `json:"opens"`
	Clicks       int `json:"clicks"`
	Replies      int `json:"replies"`
	Bounces      int `json:"bounces"`
	Unsubscribes int `json:"unsubscribes"`
}

type CampaignsResponse struct {
	Envelope
	Campaigns []Campaign `json:"campaigns"`
	Total     int        `json:"total"`
}

type CampaignResponse struct {
	Envelope
	Campaign *Campaign `json:"campaign"`
}

type CampaignStatsResponse struct {
	Envelope
	Stats CampaignStats `json:"stats"`
}

// Activity is one campaign event (sent, open, click, reply, bounce...).
type Activity struct {
	Event   string `json:"event"`
	Contact string `json:"contact"`
	Step    int    `json:"step"`
	Date    string `json:"date"`
	Detail  string `json:"detail"`
}

type ActivitiesResponse struct {
	Envelope
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

// Contact is a prospect record attached to a campaign or a list.
type Contact struct {
	ID        string            `json:"_id"`
	Email     string            `json:"email"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Company   string            `json:"company"`
	LinkedIn  string            `json:"linkedinUrl"`
	Status    string            `json:"status"`
	Fields    map[string]string `json:"fields"`
}

type ContactsResponse struct {
	Envelope
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
}

type ContactResponse struct {
	Envelope
	Contact *Contact `json:"contact"`
}

type ContactList struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	ContactsCount int    `json:"contactsCount"`
	CreatedAt     string `json:"createdAt"`
}

type ContactListsResponse struct {
	Envelope
	Lists []ContactList `json:"lists"`
}

type ContactListResponse struct {
	Envelope
	List *ContactList `json:"list"`
}

type Blacklist struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type BlacklistsResponse struct {
	Envelope
	Blacklists []Blacklist `json:"blacklists"`
}

// Provider is a sending mailbox connected to the account.
type Provider struct {
	ID         string `json:"_id"`
	Email      string `json:"email"`
	Kind       string `json:"type"`
	Status     string `json:"status"`
	DailyLimit int    `json:"dailyLimit"`
	WarmupOn   bool   `json:"warmupEnabled"`
}

type ProvidersResponse struct {
	Envelope
	Providers []Provider `json:"providers"`
}

type ProviderResponse struct {
	Envelope
	Provider *Provider `json:"provider"`
}

type GlobalStatsResponse struct {
	Envelope
	Stats CampaignStats `json:"stats"`
	Start string        `json:"start"`
	End   string        `json:"end"`
}
