package keywords

// Stopword sets, loaded once and read-only afterwards. A token is checked
// against the list matching its script, see IsStopword.
var (
	arabicStopwords  map[string]bool
	englishStopwords map[string]bool
)

var arabicStopwordList = []string{
	"و", "في", "من", "على", "عن", "إلى", "الى", "مع", "أن", "إن",
	"كان", "كانت", "هو", "هي", "هم", "هذا", "هذه", "ذلك", "تلك", "هناك",
	"كل", "كما", "أو", "او", "بل", "إذا", "اذا", "حتى", "ثم", "قد",
	"لقد", "ما", "لم", "لن", "لا", "أي", "اي", "أنا", "انت", "انتِ",
	"أنتم", "انتم", "أننا", "اننا", "نحن", "هما", "لدي", "لديه", "عند",
	"عنده", "اليوم", "بس", "ده", "دي",
}

var englishStopwordList = []string{
	"the", "a", "an", "and", "or", "but", "of", "to", "in", "on",
	"for", "with", "by", "from", "as", "at", "is", "are", "was", "were",
	"be", "been", "being", "it", "its", "this", "that", "these", "those",
	"you", "your", "i", "we", "they", "he", "she", "them", "our", "us",
	"my", "me", "do", "does", "did", "not", "no", "yes", "just", "only",
	"very", "more", "most", "less", "least", "up", "down", "out", "over",
	"under", "into", "about",
}

func init() {
	arabicStopwords = make(map[string]bool, len(arabicStopwordList))
	for _, w := range arabicStopwordList {
		arabicStopwords[w] = true
	}
	englishStopwords = make(map[string]bool, len(englishStopwordList))
	for _, w := range englishStopwordList {
		englishStopwords[w] = true
	}
}
