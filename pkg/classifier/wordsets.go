package classifier

// Static lexical tables. These are domain-tuned for ticketing/refund/payment
// support and are loaded once; nothing mutates them at runtime.

var romanHindiFunctionWords = map[string]bool{
	"mujhe": true, "muje": true, "mera": true, "meri": true, "mere": true,
	"tum": true, "aap": true, "kya": true, "kaise": true, "kyu": true,
	"kyon": true, "nahi": true, "haan": true, "haanji": true, "bhai": true,
	"kripya": true, "kripa": true, "ke": true, "ki": true, "ka": true,
	"ko": true, "se": true, "par": true, "mein": true, "liye": true,
	"bana": true, "do": true, "hai": true, "tha": true, "thi": true,
}

var englishHintWords = map[string]bool{
	"refund": true, "refunds": true, "payment": true, "payments": true,
	"booking": true, "ticket": true, "status": true, "issue": true,
	"problem": true, "help": true, "confirmation": true, "confirm": true,
	"cancel": true, "cancellation": true, "show": true, "movie": true,
	"event": true, "balance": true, "account": true, "amount": true,
	"discount": true, "price": true,
}

var supportRequestWords = map[string]bool{
	"ticket": true, "agent": true, "support": true, "helpdesk": true,
	"human": true, "call": true, "representative": true,
	"टिकट": true, "एजेंट": true, "सपोर्ट": true, "मदद": true, "कॉल": true,
}

var refundWords = map[string]bool{
	"refund": true, "refunds": true,
	"रिफंड": true, "रिफन्ड": true, "वापसी": true,
	"paisa": true, "paise": true,
}

var paymentWords = map[string]bool{
	"payment": true, "payments": true, "pay": true, "paid": true,
	"paisa": true, "paise": true, "upi": true, "card": true, "debit": true,
	"credit": true, "netbanking": true, "wallet": true, "gpay": true,
	"phonepe": true, "paytm": true, "bank": true,
	"भुगतान": true, "पेमेंट": true, "कार्ड": true, "यूपीआई": true,
}

var bookingWords = map[string]bool{
	"booking": true, "बुकिंग": true, "ticket": true, "टिकट": true, "show": true,
}

var extraDomainWords = map[string]bool{
	"transaction": true, "deducted": true, "blocked": true, "block": true,
	"seat": true, "seats": true, "order": true, "orders": true,
}

// domainWords is the union used by the off-topic check.
var domainWords = func() map[string]bool {
	union := make(map[string]bool)
	for _, set := range []map[string]bool{refundWords, paymentWords, bookingWords, englishHintWords, extraDomainWords} {
		for w := range set {
			union[w] = true
		}
	}
	return union
}()

// issuePatterns are bilingual token pairs; a message matches when its token
// set is a superset of any pair. Matching fast-tracks issue recognition.
var issuePatterns = [][]string{
	{"amount", "deducted"},
	{"amount", "confirmation"},
	{"deducted", "confirmation"},
	{"refund", "received"},
	{"refund", "pending"},
	{"show", "cancelled"},
	{"show", "canceled"},
	{"wrong", "amount"},
	{"discount", "applied"},
	{"discount", "not"},
	{"confirmation", "not"},
	{"payment", "failed"},
	{"transaction", "failed"},
	{"payment", "declined"},
	{"पैसे", "कट"},
	{"रिफंड", "नहीं"},
	{"शो", "कैंसिल"},
	{"गलत", "अमाउंट"},
	{"डिस्काउंट", "नहीं"},
	{"कन्फर्मेशन", "नहीं"},
	{"पैसा", "कटा"},
	{"paisa", "kata"},
	{"paisa", "cut"},
	{"refund", "nahi"},
	{"confirmation", "nahi"},
	{"show", "cancel"},
	{"amount", "wrong"},
}

var englishGreetings = map[string]bool{
	"hi": true, "hello": true, "hey": true, "thanks": true, "thank": true,
	"ok": true, "okay": true, "good": true, "gm": true,
	"goodmorning": true, "goodafternoon": true, "goodevening": true,
}

var hindiGreetings = map[string]bool{
	"नमस्ते": true, "हाय": true, "हैलो": true, "धन्यवाद": true,
	"ठीक": true, "ओके": true, "सुप्रभात": true, "शुभ": true,
}

var followupWords = map[string]bool{
	"timeline": true, "time": true, "status": true, "when": true,
	"how": true, "howlong": true, "where": true, "track": true,
	"update": true, "day": true, "days": true, "week": true, "weeks": true,
	"month": true, "months": true, "late": true, "delayed": true,
	"delay": true, "pending": true, "since": true,
	"kab": true, "kabtak": true, "kabtk": true, "kitna": true, "kabhi": true,
	"कब": true, "कबतक": true, "स्थिति": true, "टाइमलाइन": true,
	"कहाँ": true, "कैसे": true, "कितना": true,
}

var closingPhrasesEN = []string{
	"thank you", "thanks", "thx", "appreciate", "that helps", "this helps",
	"issue resolved", "resolved", "solved", "all good", "no further help",
}

var closingPhrasesHI = []string{
	"धन्यवाद", "थैंक यू", "हो गया", "समाधान हो गया",
	"मदद मिली", "सब ठीक", "ठीक है धन्यवाद",
}

var closingNegativeEN = []string{
	"but", "still", "not", "need help", "help me", "issue", "problem", "pending",
}

var closingNegativeHI = []string{
	"नहीं", "लेकिन", "पर", "समस्या", "मदद चाहिए",
}
