package language

// Closed lists of common grammatical words, diacritics already stripped.
// The slice order below is the scoring order and decides stable tie ordering.
var functionWords = []struct {
	lang  string
	words []string
}{
	{"en", []string{"the", "and", "is", "are", "was", "were", "will", "have", "has", "been",
		"this", "that", "with", "for", "not", "but", "you", "all", "can", "from",
		"they", "what", "when", "how", "why", "who", "which", "about", "would",
		"could", "should", "into", "more", "some", "than", "them", "these", "other",
		"only", "also", "very", "even", "most", "where", "after", "before", "every",
		"through", "because", "your", "our", "their", "there", "here", "while",
		"between", "both", "during", "being", "over", "again", "then", "once",
		"just", "like", "my", "its", "out", "did", "had", "any", "now"}},
	{"es", []string{"el", "la", "los", "las", "un", "una", "de", "del", "al", "con", "por",
		"para", "que", "en", "es", "son", "como", "mas", "pero", "este", "esta",
		"estos", "estas", "ese", "esa", "muy", "cuando", "donde", "porque", "entre",
		"desde", "hasta", "sobre", "todo", "cada", "otro", "otra", "sin", "siempre",
		"nunca", "puede", "tiene", "hay", "tambien", "despues", "antes", "nos",
		"les", "su", "sus", "mi", "mis", "tu", "tus", "yo", "ella", "ellos",
		"ya", "aqui", "asi", "solo", "mucho", "poco", "mejor", "peor", "nuevo",
		"nueva", "bueno", "buena", "grande", "se", "lo", "le"}},
	{"fr", []string{"le", "la", "les", "un", "une", "de", "des", "du", "au", "aux",
		"et", "est", "sont", "dans", "pour", "pas", "qui", "vers", "sur", "avec",
		"plus", "mais", "tout", "cette", "ces", "ses", "mon", "mes", "par",
		"vous", "nous", "ils", "elles", "aussi", "tres", "meme", "ou", "comme",
		"quand", "depuis", "apres", "avant", "toujours", "jamais", "je", "tu",
		"il", "elle", "on", "leur", "leurs", "notre", "votre", "ce", "cet",
		"ici", "donc", "alors", "ni", "car", "puis", "encore", "rien", "peu",
		"beaucoup", "trop", "assez", "ne"}},
	{"de", []string{"der", "die", "das", "ein", "eine", "und", "ist", "nicht", "auf", "mit",
		"ich", "sie", "den", "dem", "des", "von", "zu", "fur", "auch", "sich",
		"aber", "oder", "wie", "noch", "nach", "nur", "wenn", "kann", "hat",
		"war", "wir", "sind", "werden", "haben", "wird", "schon", "mehr",
		"immer", "sehr", "alle", "wieder", "neue", "diese", "hier", "beim",
		"uber", "unter", "zwischen", "durch", "ohne", "gegen"}},
	{"it", []string{"il", "la", "gli", "una", "che", "del", "per", "con", "sono", "questo",
		"nella", "dalla", "come", "alla", "delle", "dei", "suo", "sua",
		"loro", "essere", "stato", "anche", "piu", "molto", "sempre", "dove",
		"quando", "ogni", "tutto", "dopo", "prima", "senza", "ancora", "qui",
		"fra", "tra", "perche", "poi", "solo", "mai", "bene", "ora", "anno"}},
	{"pt", []string{"que", "para", "com", "uma", "por", "mais", "como", "mas", "seu", "sua",
		"esta", "isso", "quando", "muito", "dos", "das", "nos", "tem", "foi",
		"ser", "pode", "ainda", "entre", "depois", "desde", "cada", "sobre",
		"tambem", "aqui", "onde", "todos", "sempre", "sem", "outro", "outra",
		"ele", "ela", "eles", "voce", "meu", "minha", "bem", "agora", "ano"}},
	{"nl", []string{"het", "een", "van", "dat", "die", "niet", "zijn", "voor", "met", "ook",
		"maar", "naar", "wel", "nog", "dan", "bij", "uit", "aan", "kan", "deze",
		"alle", "hun", "hebben", "wat", "waar", "moet", "veel", "goed", "over",
		"door", "meer", "haar", "zou", "tussen", "onder", "zonder", "alleen"}},
	{"sv", []string{"och", "att", "det", "som", "har", "med", "den", "inte", "jag", "till",
		"var", "kan", "ett", "ska", "men", "dig", "mig", "alla", "hans", "hennes",
		"deras", "efter", "bara", "nar", "hur", "mer", "utan", "mycket", "sedan"}},
	{"pl", []string{"nie", "jak", "tak", "ale", "jest", "czy", "aby", "tego", "dla", "tylko",
		"jako", "przed", "przez", "przy", "bez", "bardzo", "jeszcze", "wszystko",
		"moze", "gdzie", "kiedy", "ich", "ten", "nas", "jego", "jej", "tutaj"}},
	{"tr", []string{"bir", "bu", "ile", "gibi", "daha", "olan", "ancak", "kadar", "nasil",
		"sonra", "icin", "ama", "cok", "var", "hem", "her", "bile", "hangi",
		"bazi", "yeni", "burada", "oraya", "simdi", "sadece", "hala", "olarak"}},
	{"id", []string{"yang", "dan", "ini", "itu", "untuk", "dengan", "dari", "pada", "akan",
		"tidak", "ada", "juga", "bisa", "sudah", "lebih", "oleh", "saya", "kami",
		"mereka", "tetapi", "atau", "hanya", "seperti", "karena", "semua", "sangat"}},
	{"vi", []string{"cua", "trong", "nhung", "duoc", "cac", "cung", "khong", "nhu", "nay",
		"khi", "mot", "nguoi", "theo", "nhieu", "tai", "voi", "cho", "roi",
		"con", "rat", "hon", "noi", "hay", "biet", "lam", "den", "sau"}},
}

var wordSets []map[string]struct{}

func init() {
	wordSets = make([]map[string]struct{}, len(functionWords))
	for i, fw := range functionWords {
		set := make(map[string]struct{}, len(fw.words))
		for _, w := range fw.words {
			set[w] = struct{}{}
		}
		wordSets[i] = set
	}
}
