package render

// PageMeta is the head metadata of the block visualization page
type PageMeta struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Keywords    string `json:"keywords" yaml:"keywords"`
}

// DefaultPageMeta returns the metadata of the Slovenian tariff page
func DefaultPageMeta() PageMeta {
	return PageMeta{
		Title: "Časovni bloki - Semafor omrežnine za Slovenijo",
		Description: "Semafor časovnih blokov omrežnine za Slovenijo. " +
			"Vizualizacija trenutnega bloka porabe elektrike in pregled blokov za izbran dan in uro.",
		Keywords: "časovni bloki, semafor, omrežnina, elektrika, Slovenija, poraba energije, vizualizacija",
	}
}
