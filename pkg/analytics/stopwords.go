package analytics

import "github.com/dtnitsch/wordfreq/pkg/stemmer"

// commonWords is a list of frequently occurring English words that can be
// dropped from a ranking. Entries are raw words; stopwordStems holds their
// stemmed forms since rankings are keyed by stem.
var commonWords = []string{
	"a", "about", "above", "across", "after", "afterwards",
	"again", "against", "all", "almost", "alone", "along",
	"already", "also", "although", "always", "am", "among",
	"amongst", "an", "and", "another", "any",
	"anyhow", "anyone", "anything", "anyway", "anywhere",
	"are", "around", "as", "at",

	"back", "be", "became", "because", "become", "becomes",
	"becoming", "been", "before", "beforehand", "behind",
	"being", "below", "beside", "besides", "between",
	"beyond", "both", "but", "by",

	"can", "cannot", "could",

	"did", "do", "does", "doing", "done", "down", "during",

	"each", "either", "else", "elsewhere", "enough",
	"etc", "even", "ever", "every", "everyone", "everything", "everywhere",

	"few", "for", "former", "formerly", "from", "further",

	"had", "has", "have", "having", "he", "hence",
	"her", "here", "hereafter", "hereby", "herein", "hereupon", "hers",
	"herself", "him", "himself", "his", "how", "however",

	"i", "if", "in", "indeed", "into", "is", "it", "its", "itself",

	"just",

	"last", "latter", "latterly", "least", "less", "let", "like",

	"many", "may", "maybe", "me", "meanwhile", "might", "mine", "more",
	"moreover", "most", "mostly", "much", "must", "my", "myself",

	"neither", "never", "nevertheless", "next", "no", "nobody", "none",
	"noone", "nor", "not", "nothing", "now", "nowhere",

	"of", "off", "often", "on", "once", "one", "only", "onto", "or",
	"other", "others", "otherwise", "our", "ours", "ourselves", "out",
	"over", "own",

	"per", "perhaps", "please",

	"rather", "same", "seem", "seemed", "seeming", "seems", "several",
	"she", "should", "since", "so", "some", "somehow", "someone",
	"something", "sometime", "sometimes", "somewhere", "still", "such",

	"than", "that", "the", "their", "theirs", "them", "themselves",
	"then", "thence", "there", "thereafter", "thereby", "therefore",
	"therein", "thereupon", "these", "they", "this", "those", "through",
	"throughout", "thru", "thus", "to", "together", "too", "toward", "towards",

	"under", "until", "up", "upon", "us",

	"very", "via",

	"was", "we", "well", "were", "what", "whatever", "when", "whence",
	"whenever", "where", "whereafter", "whereas", "whereby", "wherein",
	"whereupon", "wherever", "whether", "which", "while", "whither",
	"who", "whoever", "whose", "why", "with", "within", "without", "would",

	"yet", "you", "your", "yours", "yourself", "yourselves",
}

var stopwordStems = func() map[string]struct{} {
	m := make(map[string]struct{}, len(commonWords))
	for _, w := range commonWords {
		m[stemmer.Stem(w)] = struct{}{}
	}
	return m
}()

// IsStopword reports whether stem is the stemmed form of a common word.
// Short stems keep their case, so "The" is not a stopword but "the" is.
func IsStopword(stem string) bool {
	_, exists := stopwordStems[stem]
	return exists
}
