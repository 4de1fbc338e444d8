package language

var names = map[string]string{
	"en":    "English",
	"es":    "Spanish",
	"fr":    "French",
	"de":    "German",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"ja":    "Japanese",
	"ko":    "Korean",
	"zh":    "Chinese",
	"zh-cn": "Chinese (Simplified)",
	"zh-tw": "Chinese (Traditional)",
	"ar":    "Arabic",
	"hi":    "Hindi",
	"bn":    "Bengali",
	"ur":    "Urdu",
	"ta":    "Tamil",
	"te":    "Telugu",
	"mr":    "Marathi",
	"gu":    "Gujarati",
	"kn":    "Kannada",
	"ml":    "Malayalam",
	"pa":    "Punjabi",
	"ne":    "Nepali",
	"si":    "Sinhala",
	"th":    "Thai",
	"vi":    "Vietnamese",
	"id":    "Indonesian",
	"ms":    "Malay",
	"tl":    "Filipino",
	"nl":    "Dutch",
	"sv":    "Swedish",
	"da":    "Danish",
	"no":    "Norwegian",
	"nb":    "Norwegian",
	"fi":    "Finnish",
	"pl":    "Polish",
	"cs":    "Czech",
	"sk":    "Slovak",
	"hu":    "Hungarian",
	"ro":    "Romanian",
	"bg":    "Bulgarian",
	"hr":    "Croatian",
	"sr":    "Serbian",
	"sl":    "Slovenian",
	"et":    "Estonian",
	"lv":    "Latvian",
	"lt":    "Lithuanian",
	"tr":    "Turkish",
	"el":    "Greek",
	"he":    "Hebrew",
	"fa":    "Persian",
	"sw":    "Swahili",
	"af":    "Afrikaans",
}

// Name maps a language code to a readable name. Unmapped codes render
// as "Unknown (<code>)".
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return "Unknown (" + code + ")"
}
