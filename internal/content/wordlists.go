package content

// Process-wide read-only vocabulary. Loaded once, never mutated during
// analysis.

var positiveWords = wordSet(
	"good", "great", "excellent", "amazing", "wonderful", "best",
	"love", "happy", "awesome", "nice", "fantastic", "beautiful",
	"perfect", "enjoy", "thanks", "thank", "appreciated", "like",
	"excited", "glad", "pleased", "impressive", "well",
)

var negativeWords = wordSet(
	"bad", "terrible", "awful", "horrible", "worst", "hate",
	"dislike", "poor", "disappointed", "disappointing", "sucks",
	"suck", "sad", "angry", "upset", "unfortunate", "wrong",
	"never", "problem", "issue", "fail", "failed", "failure",
)

// suspiciousKeywords are terms that recur in fake-account content: money
// making, aggressive marketing, adult bait, calls to action, health scams
// and urgency language.
var suspiciousKeywords = wordSet(
	// Money and financial terms
	"money", "cash", "earn", "income", "rich", "wealthy", "profit",
	"investment", "invest", "bitcoin", "crypto", "cryptocurrency",
	"forex", "trading", "trader", "stocks", "btc", "eth",

	// Marketing and offers
	"offer", "free", "discount", "deal", "promo", "promotion",
	"limited", "exclusive", "opportunity", "chance", "lifetime",

	// Employment
	"job", "career", "hiring", "remote", "work", "home", "online",
	"passive", "salary", "payday", "loan", "loans",

	// Adult content
	"hot", "sexy", "dating", "date", "single", "chat", "meet",
	"hookup", "adult", "cam", "webcam", "girl", "girls", "boys",

	// Calls to action
	"click", "tap", "join", "register", "sign", "subscribe",
	"follow", "dm", "pm", "message", "contact", "link", "bio",

	// Health and beauty
	"weight", "loss", "diet", "slim", "fat", "burn", "health",
	"pill", "supplement", "vitamin", "detox", "cleanse", "inches",

	// Urgency
	"urgent", "hurry", "quick", "fast", "immediately", "now",
	"today", "tonight", "soon", "act", "action",
)

// spamPatternSources match promotional phrasing, solicitation, embedded
// emails and URLs. Each pattern counts at most once per post.
var spamPatternSources = []string{
	`(?i)(earn|make)(\s+)?\$\d+(\s+)?(per|a)(\s+)?(day|week|month|hour)`,
	`(?i)free\s+money`,
	`(?i)work\s+from\s+home`,
	`(?i)(click|tap)\s+here`,
	`(?i)(check|see)(\s+)?(my|this)(\s+)?profile`,
	`(?i)follow(\s+)?(me|back)`,
	`(?i)(dm|message)(\s+)?me`,
	`(?i)dating`,
	`(?i)hot\s+(singles|girls|guys)`,
	`(?i)(bitcoin|crypto)(\s+)?(investment|trading)`,
	`(?i)get\s+rich`,
	`(?i)lose\s+weight`,
	`(?i)diet\s+pill`,
	`(?i)miracle\s+cure`,
	`[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+`,
	`https?://[A-Za-z0-9.-]+\.[A-Za-z]{2,}(/\S*)?`,
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
