package profile

import (
	"encoding/json"
	"time"
)

// Record is the immutable input to an analysis run. Every field except the
// identity triple is optional; analyzers substitute neutral defaults for
// whatever is absent. The core never mutates a Record.
type Record struct {
	Username string `json:"username"`
	Platform string `json:"platform"`
	URL      string `json:"url,omitempty"`

	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`

	CreationDate  string `json:"creation_date,omitempty"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`

	FollowersCount int  `json:"followers_count,omitempty"`
	FriendCount    int  `json:"friend_count,omitempty"`
	FollowingCount int  `json:"following_count,omitempty"`
	PostCount      *int `json:"post_count,omitempty"`

	Posts []Post `json:"posts,omitempty"`

	Followers    []UserRef `json:"followers,omitempty"`
	Following    []UserRef `json:"following,omitempty"`
	Interactions []UserRef `json:"interactions,omitempty"`

	ExternalURL    string `json:"external_url,omitempty"`
	HasExternalURL bool   `json:"has_external_url,omitempty"`

	Verified   bool `json:"verified,omitempty"`
	IsVerified bool `json:"is_verified,omitempty"`
	IsPrivate  bool `json:"is_private,omitempty"`

	// Twitter/X extras.
	IsBlue bool `json:"is_blue,omitempty"`

	// Instagram extras.
	IsBusinessAccount bool `json:"is_business_account,omitempty"`
	HasHighlights     bool `json:"has_highlights,omitempty"`
	HasIGTV           bool `json:"has_igtv,omitempty"`

	// Facebook extras.
	PageLikesCount     int    `json:"page_likes_count,omitempty"`
	Work               string `json:"work,omitempty"`
	Education          string `json:"education,omitempty"`
	RelationshipStatus string `json:"relationship_status,omitempty"`
	HasProfileDetails  bool   `json:"has_profile_details,omitempty"`
}

// VerifiedFlag tolerates both field spellings seen across platforms.
func (r *Record) VerifiedFlag() bool {
	return r.Verified || r.IsVerified
}

// ExternalURLFlag reports whether the profile links out of the platform.
func (r *Record) ExternalURLFlag() bool {
	return r.HasExternalURL || r.ExternalURL != ""
}

// Post is a single published item. Platforms disagree on field names, so a
// few aliases are decoded and reconciled by the accessors below.
type Post struct {
	Text      string   `json:"text,omitempty"`
	Caption   string   `json:"caption,omitempty"`
	Timestamp FlexTime `json:"timestamp,omitempty"`
	Likes     int      `json:"likes,omitempty"`
	Comments  int      `json:"comments,omitempty"`
	Shares    int      `json:"shares,omitempty"`
	Retweets  int      `json:"retweets,omitempty"`
	IsRetweet bool     `json:"is_retweet,omitempty"`
	Source    string   `json:"source,omitempty"`
	ImageURL  string   `json:"image_url,omitempty"`
}

// Body returns the textual content of the post regardless of which field the
// platform used.
func (p *Post) Body() string {
	if p.Text != "" {
		return p.Text
	}
	return p.Caption
}

// EngagementTotal sums likes, comments and shares, falling back to retweets
// when the platform reports those instead of shares.
func (p *Post) EngagementTotal() int {
	shares := p.Shares
	if shares == 0 {
		shares = p.Retweets
	}
	return p.Likes + p.Comments + shares
}

// UnmarshalJSON accepts either a post object or a bare string, which some
// sources emit for text-only posts.
func (p *Post) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*p = Post{Text: text}
		return nil
	}

	type alias Post
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Post(a)
	return nil
}

// UserRef identifies another account in a relationship list. Sources emit
// either bare IDs/usernames or objects with one of several key names.
type UserRef string

func (u *UserRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			ID       json.Number `json:"id"`
			UserID   json.Number `json:"user_id"`
			Username string      `json:"username"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		switch {
		case obj.ID != "":
			*u = UserRef(obj.ID.String())
		case obj.UserID != "":
			*u = UserRef(obj.UserID.String())
		default:
			*u = UserRef(obj.Username)
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err2 := json.Unmarshal(data, &n); err2 != nil {
			return err
		}
		s = n.String()
	}
	*u = UserRef(s)
	return nil
}

// FlexTime decodes the timestamp encodings seen in the wild: unix seconds,
// "2006-01-02T15:04:05", "2006-01-02 15:04:05", and RFC3339. An encoding
// that matches none of them leaves the value unset rather than failing the
// whole record.
type FlexTime struct {
	Time  time.Time
	Valid bool
}

var postTimeFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// At builds a valid FlexTime, mostly for tests and synthetic sources.
func At(t time.Time) FlexTime {
	return FlexTime{Time: t, Valid: true}
}

// ParsePostTime tries the supported string encodings in order.
func ParsePostTime(raw string) (time.Time, bool) {
	for _, layout := range postTimeFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = FlexTime{}
		return nil
	}

	if data[0] != '"' {
		var unix float64
		if err := json.Unmarshal(data, &unix); err != nil {
			*f = FlexTime{}
			return nil
		}
		*f = FlexTime{Time: time.Unix(int64(unix), 0).UTC(), Valid: true}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if t, ok := ParsePostTime(raw); ok {
		*f = FlexTime{Time: t, Valid: true}
	} else {
		*f = FlexTime{}
	}
	return nil
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}
