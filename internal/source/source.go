// Package source resolves user input (profile URLs or bare usernames) and
// produces profile records for each supported platform. Fetch is simulated:
// records are generated deterministically from the username, which keeps the
// pipeline runnable without platform API credentials.
package source

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/strrl/fakeprofile/internal/profile"
)

var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrNoUsername          = errors.New("could not extract username")
)

// SupportedPlatforms lists the platforms Fetch knows how to simulate.
var SupportedPlatforms = []string{"twitter", "instagram", "facebook"}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,60}$`)

var platformHosts = map[string][]string{
	"twitter":   {"twitter.com", "x.com"},
	"instagram": {"instagram.com"},
	"facebook":  {"facebook.com", "fb.com"},
}

// ExtractUsername pulls the username out of a profile URL, an @handle, or a
// bare username.
func ExtractUsername(input, platform string) (string, error) {
	hosts, ok := platformHosts[platform]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoUsername
	}

	if strings.Contains(input, "://") || looksLikeHost(input, hosts) {
		return usernameFromURL(input, platform, hosts)
	}

	name := strings.TrimPrefix(input, "@")
	if !usernamePattern.MatchString(name) {
		return "", fmt.Errorf("%w from %q", ErrNoUsername, input)
	}
	return name, nil
}

func looksLikeHost(input string, hosts []string) bool {
	for _, h := range hosts {
		if strings.HasPrefix(input, h+"/") || strings.HasPrefix(input, "www."+h+"/") {
			return true
		}
	}
	return false
}

func usernameFromURL(raw, platform string, hosts []string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w from %q", ErrNoUsername, raw)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	matched := false
	for _, h := range hosts {
		if host == h {
			matched = true
			break
		}
	}
	if !matched {
		return "", fmt.Errorf("%w from %q: not a %s URL", ErrNoUsername, raw, platform)
	}

	// Numeric facebook profiles use profile.php?id=N.
	if platform == "facebook" && strings.HasSuffix(u.Path, "/profile.php") {
		if id := u.Query().Get("id"); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w from %q", ErrNoUsername, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", fmt.Errorf("%w from %q", ErrNoUsername, raw)
	}
	name := segments[0]
	if !usernamePattern.MatchString(name) {
		return "", fmt.Errorf("%w from %q", ErrNoUsername, raw)
	}
	return name, nil
}

// ProfileURL builds the canonical profile URL for a platform and username.
func ProfileURL(platform, username string) string {
	switch platform {
	case "twitter":
		return "https://twitter.com/" + username
	case "instagram":
		return "https://instagram.com/" + username
	case "facebook":
		return "https://facebook.com/" + username
	default:
		return ""
	}
}

// Fetch resolves input to a username and returns a simulated record for it.
// The same input always yields the same record.
func Fetch(input, platform string) (*profile.Record, error) {
	username, err := ExtractUsername(input, platform)
	if err != nil {
		return nil, err
	}

	switch platform {
	case "twitter", "instagram", "facebook":
		return simulate(username, platform), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
}

func seedFor(username, platform string) int64 {
	h := fnv.New64a()
	h.Write([]byte(platform))
	h.Write([]byte(":"))
	h.Write([]byte(username))
	return int64(h.Sum64())
}

// simulate generates a plausible record. Roughly a third of usernames hash
// into the suspicious bucket, which gets promo content, inflated following
// counts and a stock avatar.
func simulate(username, platform string) *profile.Record {
	rng := rand.New(rand.NewSource(seedFor(username, platform)))
	suspicious := rng.Float64() < 0.3

	now := time.Now().UTC()
	var ageDays int
	if suspicious {
		ageDays = 1 + rng.Intn(60)
	} else {
		ageDays = 180 + rng.Intn(2500)
	}
	created := now.AddDate(0, 0, -ageDays)

	rec := &profile.Record{
		Username:      username,
		Platform:      platform,
		URL:           ProfileURL(platform, username),
		Name:          displayName(username),
		CreationDate:  created.Format("2006-01-02"),
		ProfilePicURL: avatarURL(rng, username, suspicious),
	}

	if suspicious {
		rec.Bio = randomChoice(rng, suspiciousBios)
		rec.FollowersCount = rng.Intn(40)
		rec.FollowingCount = 800 + rng.Intn(4000)
		rec.ExternalURL = "http://bit.ly/" + username[:min(len(username), 6)]
	} else {
		rec.Bio = randomChoice(rng, genuineBios)
		rec.FollowersCount = 50 + rng.Intn(5000)
		rec.FollowingCount = 50 + rng.Intn(1500)
		rec.Location = randomChoice(rng, locations)
	}

	rec.Posts = simulatePosts(rng, now, suspicious)
	simulateNetwork(rng, rec, suspicious)
	applyPlatformExtras(rng, rec, suspicious)
	return rec
}

func avatarURL(rng *rand.Rand, username string, suspicious bool) string {
	if suspicious && rng.Float64() < 0.5 {
		return "https://img.example.com/stock-photo-" + username + ".jpg"
	}
	return "https://img.example.com/u/" + username + ".jpg"
}

func simulatePosts(rng *rand.Rand, now time.Time, suspicious bool) []profile.Post {
	var bodies []string
	var count int
	if suspicious {
		bodies = suspiciousPosts
		count = 5 + rng.Intn(20)
	} else {
		bodies = genuinePosts
		count = 3 + rng.Intn(30)
	}

	posts := make([]profile.Post, 0, count)
	t := now
	for i := 0; i < count; i++ {
		if suspicious {
			// Fake accounts post in tight bursts.
			t = t.Add(-time.Duration(rng.Intn(30)+1) * time.Minute)
		} else {
			t = t.Add(-time.Duration(rng.Intn(72)+1) * time.Hour)
		}

		post := profile.Post{
			Text:      randomChoice(rng, bodies),
			Timestamp: profile.At(t),
		}
		if suspicious {
			post.Likes = rng.Intn(3)
			post.Comments = rng.Intn(2)
		} else {
			post.Likes = rng.Intn(200)
			post.Comments = rng.Intn(40)
			post.Shares = rng.Intn(20)
		}
		posts = append(posts, post)
	}
	return posts
}

func simulateNetwork(rng *rand.Rand, rec *profile.Record, suspicious bool) {
	followerN := min(rec.FollowersCount, 60)
	followingN := min(rec.FollowingCount, 60)

	rec.Followers = make([]profile.UserRef, 0, followerN)
	for i := 0; i < followerN; i++ {
		rec.Followers = append(rec.Followers, profile.UserRef(fmt.Sprintf("user_%d", rng.Intn(10000))))
	}
	rec.Following = make([]profile.UserRef, 0, followingN)
	for i := 0; i < followingN; i++ {
		rec.Following = append(rec.Following, profile.UserRef(fmt.Sprintf("user_%d", rng.Intn(10000))))
	}

	if !suspicious {
		// Genuine accounts interact with people who follow them.
		for _, f := range rec.Followers {
			if rng.Float64() < 0.4 {
				rec.Interactions = append(rec.Interactions, f)
			}
		}
		// And follow some of them back.
		for i, f := range rec.Followers {
			if i < len(rec.Following) && rng.Float64() < 0.3 {
				rec.Following[i] = f
			}
		}
	}
}

func applyPlatformExtras(rng *rand.Rand, rec *profile.Record, suspicious bool) {
	switch rec.Platform {
	case "twitter":
		rec.IsBlue = !suspicious && rng.Float64() < 0.1
		for i := range rec.Posts {
			rec.Posts[i].Source = randomChoice(rng, tweetSources)
			if suspicious && rng.Float64() < 0.4 {
				rec.Posts[i].IsRetweet = true
			}
		}
	case "instagram":
		rec.IsBusinessAccount = suspicious && rng.Float64() < 0.5
		rec.HasHighlights = !suspicious && rng.Float64() < 0.7
		rec.HasIGTV = !suspicious && rng.Float64() < 0.3
		for i := range rec.Posts {
			rec.Posts[i].Caption = rec.Posts[i].Text
			rec.Posts[i].Text = ""
		}
	case "facebook":
		if !suspicious {
			rec.Work = randomChoice(rng, workplaces)
			rec.Education = randomChoice(rng, schools)
			rec.RelationshipStatus = randomChoice(rng, relationshipStates)
			rec.HasProfileDetails = true
		}
		rec.PageLikesCount = rng.Intn(500)
	}
}

func randomChoice(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func displayName(username string) string {
	words := strings.Fields(strings.ReplaceAll(username, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var suspiciousBios = []string{
	"",
	"Make money fast! Click the link below",
	"Crypto investor | DM for guaranteed returns",
	"Work from home and earn $5000 weekly",
	"Free giveaway! Follow and click my link",
}

var genuineBios = []string{
	"Coffee enthusiast. Amateur photographer. Opinions are my own.",
	"Software engineer by day, gardener by weekend.",
	"Mom of two. Runner. Book club regular.",
	"Exploring the world one city at a time.",
	"Musician, teacher, occasional baker.",
}

var suspiciousPosts = []string{
	"Make money fast with this one simple trick! Click here: http://bit.ly/xyz",
	"I earned $5000 working from home. DM me to learn how!",
	"Limited time offer! Free iPhone giveaway, click the link now!",
	"Guaranteed crypto returns, act now before it's too late!",
	"Congratulations! You've been selected. Claim your prize here.",
}

var genuinePosts = []string{
	"Had a great hike this morning, the views were incredible.",
	"Trying out a new pasta recipe tonight. Wish me luck!",
	"Finally finished that book I've been reading all month.",
	"Beautiful sunset at the beach today.",
	"Excited for the concert this weekend with friends!",
	"My garden tomatoes are finally ripening.",
	"Long week at work but the project shipped on time.",
}

var locations = []string{
	"Seattle, WA", "Austin, TX", "Portland, OR", "Chicago, IL", "Denver, CO",
}

var tweetSources = []string{
	"Twitter for iPhone", "Twitter for Android", "Twitter Web App",
}

var workplaces = []string{
	"Acme Corp", "Northwind Traders", "Self-employed", "City Hospital",
}

var schools = []string{
	"State University", "Community College", "Tech Institute",
}

var relationshipStates = []string{
	"Single", "Married", "In a relationship",
}
