package journal

// DateLayout is the wire format of a log date.
const DateLayout = "2006-01-02"

// DefaultTimezone is what the API assigns when a user is created without one.
const DefaultTimezone = "America/New_York"

// User is the account record returned by the API and kept in local storage.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// UserCreate is the body for creating a user.
type UserCreate struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// LinkDump wraps one saved URL.
type LinkDump struct {
	URL string `json:"url"`
}

// DailyLog is one day of check-in and checkout answers for a user.
type DailyLog struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	LogDate      string     `json:"log_date"`
	CheckinTime  *Timestamp `json:"checkin_time,omitempty"`
	CheckoutTime *Timestamp `json:"checkout_time,omitempty"`
	InAttention  string     `json:"in_attention,omitempty"`
	InObsession  string     `json:"in_obsession,omitempty"`
	InAgency     string     `json:"in_agency,omitempty"`
	OutTIL1      string     `json:"out_til1,omitempty"`
	OutTIL2      string     `json:"out_til2,omitempty"`
	OutTIL3      string     `json:"out_til3,omitempty"`
	Reading      string     `json:"reading,omitempty"`
	LinkDumps    []LinkDump `json:"link_dumps"`
}

// CheckedIn reports whether the morning part of the log was filled in.
func (l DailyLog) CheckedIn() bool {
	return l.InAttention != ""
}

// CheckedOut reports whether the evening part of the log was submitted.
func (l DailyLog) CheckedOut() bool {
	return l.CheckoutTime != nil
}

// URLs returns the link dump URLs in order.
func (l DailyLog) URLs() []string {
	urls := make([]string, 0, len(l.LinkDumps))
	for _, link := range l.LinkDumps {
		urls = append(urls, link.URL)
	}
	return urls
}

// DailyLogCreate is the check-in payload.
type DailyLogCreate struct {
	LogDate     string `json:"log_date"`
	InAttention string `json:"in_attention"`
	InObsession string `json:"in_obsession"`
	InAgency    string `json:"in_agency"`
}

// DailyLogCheckout is the checkout payload. The API requires OutTIL1.
type DailyLogCheckout struct {
	OutTIL1   string     `json:"out_til1"`
	OutTIL2   string     `json:"out_til2"`
	OutTIL3   string     `json:"out_til3"`
	Reading   string     `json:"reading"`
	LinkDumps []LinkDump `json:"link_dumps"`
}

// DailyLogUpdate is a partial edit; nil fields are left untouched by the API.
type DailyLogUpdate struct {
	InAttention *string     `json:"in_attention,omitempty"`
	InObsession *string     `json:"in_obsession,omitempty"`
	InAgency    *string     `json:"in_agency,omitempty"`
	OutTIL1     *string     `json:"out_til1,omitempty"`
	OutTIL2     *string     `json:"out_til2,omitempty"`
	OutTIL3     *string     `json:"out_til3,omitempty"`
	Reading     *string     `json:"reading,omitempty"`
	LinkDumps   *[]LinkDump `json:"link_dumps,omitempty"`
}

// Empty reports whether the update carries no field at all.
func (u DailyLogUpdate) Empty() bool {
	return u.InAttention == nil && u.InObsession == nil && u.InAgency == nil &&
		u.OutTIL1 == nil && u.OutTIL2 == nil && u.OutTIL3 == nil &&
		u.Reading == nil && u.LinkDumps == nil
}

// UserCreateWithLog signs a user up together with their first check-in.
type UserCreateWithLog struct {
	UserData UserCreate     `json:"user_data"`
	LogData  DailyLogCreate `json:"log_data"`
}
