package language

var builtinLanguages = []Language{
	{Name: "Astro", Exts: []string{"astro"}},
	{Name: "C", Exts: []string{"c"}},
	{Name: "C++", Exts: []string{"cpp", "cc", "cxx"}},
	{Name: "C#", Exts: []string{"cs"}},
	{Name: "COBOL", Exts: []string{"cbl", "cob", "cobol"}},
	{Name: "CSS", Exts: []string{"css"}},
	{Name: "Dart", Exts: []string{"dart"}},
	{Name: "Elixir", Exts: []string{"ex", "exs"}},
	{Name: "Go", Exts: []string{"go"}},
	{Name: "Haskell", Exts: []string{"hs"}},
	{Name: "HTML", Exts: []string{"html", "htm"}},
	{Name: "Java", Exts: []string{"java"}},
	{Name: "JavaScript", Exts: []string{"js", "mjs", "cjs", "jsx"}},
	{Name: "Kotlin", Exts: []string{"kt", "kts"}},
	{Name: "Lua", Exts: []string{"lua"}},
	{Name: "Objective-C", Exts: []string{"m", "mm"}},
	{Name: "Perl", Exts: []string{"pl", "pm"}},
	{Name: "PHP", Exts: []string{"php"}},
	{Name: "Python", Exts: []string{"py"}},
	// .R and .r collapse to one entry after normalization
	{Name: "R", Exts: []string{"r"}},
	{Name: "Ruby", Exts: []string{"rb"}},
	{Name: "Rust", Exts: []string{"rs"}},
	{Name: "Scala", Exts: []string{"scala", "sc"}},
	{Name: "SCSS", Exts: []string{"scss", "sass"}},
	{Name: "Shell", Exts: []string{"sh"}},
	{Name: "Svelte", Exts: []string{"svelte"}},
	{Name: "Swift", Exts: []string{"swift"}},
	{Name: "TypeScript", Exts: []string{"ts", "mts", "cts", "tsx"}},
	{Name: "Vue", Exts: []string{"vue"}},
}
