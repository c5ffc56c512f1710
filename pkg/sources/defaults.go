package sources

// DefaultSources is the built-in registry used when no sources file is
// configured. Selectors track each site's current markup and need the
// occasional refresh.
func DefaultSources() []Source {
	return []Source{
		{
			Name:       "BBC News",
			ContentURL: "https://www.bbc.com/news",
			Selector:   "h3.gs-c-promo-heading__title a, h3.nw-c-promo-heading__title a",
			FeedURL:    "https://feeds.bbci.co.uk/news/rss.xml",
		},
		{
			Name:       "CNN",
			ContentURL: "https://edition.cnn.com/",
			Selector:   "h2.card__headline a, span.container__headline-text",
		},
		{
			Name:       "NY Times",
			ContentURL: "https://www.nytimes.com/",
			Selector:   "h3.css-1j68v0b a, h2.css-1e8yqj5 a",
			FeedURL:    "https://rss.nytimes.com/services/xml/rss/nyt/HomePage.xml",
		},
		{
			Name:       "The Guardian",
			ContentURL: "https://www.theguardian.com/uk",
			Selector:   "h3.fc-item__title a",
			FeedURL:    "https://www.theguardian.com/uk/rss",
		},
		{
			Name:       "Reuters",
			ContentURL: "https://www.reuters.com/",
			Selector:   "h3.media-story-card__title a",
		},
	}
}

// DefaultRegistry wires up the built-in sources.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultSources())
	if err != nil {
		// The built-in set is static; a failure here is a programming error.
		panic(err)
	}
	return reg
}
