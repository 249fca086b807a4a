package textproc

// stopwords is the fixed Portuguese stop-word set: articles, pronouns,
// prepositions and the common conjugations of "ser", "estar" and "ter".
// Entries shorter than three runes are redundant with the length filter but
// kept so the list reads as one coherent vocabulary.
var stopwords = map[string]struct{}{}

func init() {
	list := []string{
		"a", "à", "ao", "aos", "aquela", "aquelas", "aquele", "aqueles", "aquilo",
		"as", "às", "até", "com", "como", "da", "das", "de", "dela", "delas",
		"dele", "deles", "depois", "do", "dos", "e", "é", "ela", "elas", "ele",
		"eles", "em", "entre", "era", "eram", "essa", "essas", "esse", "esses",
		"esta", "está", "estamos", "estão", "estas", "estava", "estavam", "este",
		"esteja", "estejam", "estejamos", "estes", "esteve", "estive", "estivemos",
		"estiveram", "estou", "eu", "foi", "fomos", "for", "foram", "fosse",
		"fossem", "fui", "há", "isso", "isto", "já", "lhe", "lhes", "mais", "mas",
		"me", "mesmo", "meu", "meus", "minha", "minhas", "muito", "na", "não",
		"nas", "nem", "no", "nos", "nós", "nossa", "nossas", "nosso", "nossos",
		"num", "numa", "o", "os", "ou", "para", "pela", "pelas", "pelo", "pelos",
		"por", "qual", "quando", "que", "quem", "são", "se", "seja", "sejam",
		"sejamos", "sem", "ser", "será", "serão", "serei", "seremos", "seria",
		"seriam", "seu", "seus", "só", "somos", "sou", "sua", "suas", "também",
		"te", "tem", "têm", "temos", "tenha", "tenham", "tenho", "ter", "terá",
		"terão", "terei", "teremos", "teria", "teriam", "teu", "teus", "teve",
		"tinha", "tinham", "tive", "tivemos", "tiveram", "tu", "tua", "tuas",
		"um", "uma", "você", "vocês", "vos",
	}
	for _, w := range list {
		stopwords[w] = struct{}{}
	}
}
