package pages

// HeroSlide is one panel of the home page carousel.
type HeroSlide struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	CTA         string `json:"cta"`
	Category    string `json:"category"`
}

// Feature is one of the home page selling points.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FooterLink is a single footer navigation entry.
type FooterLink struct {
	Href  string `json:"href"`
	Label string `json:"label"`
}

// Footer is the sitewide footer content.
type Footer struct {
	Blurb      string       `json:"blurb"`
	QuickLinks []FooterLink `json:"quick_links"`
	Categories []FooterLink `json:"categories"`
}

// Page is a static content page addressed by slug.
type Page struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Tagline  string   `json:"tagline"`
	Sections []string `json:"sections"`
}

var heroSlides = []HeroSlide{
	{
		Title:       "Premium Fashion Collection",
		Subtitle:    "Discover elegance in every thread",
		Description: "From classic t-shirts to luxury accessories, find your perfect style with our curated fashion collection.",
		CTA:         "Shop Fashion",
		Category:    "clothing",
	},
	{
		Title:       "Luxury Timepieces & Tech",
		Subtitle:    "Time meets innovation",
		Description: "Explore our premium collection of watches and cutting-edge electronics that define modern lifestyle.",
		CTA:         "Shop Watches",
		Category:    "watches",
	},
	{
		Title:       "Lifestyle Accessories",
		Subtitle:    "Complete your look",
		Description: "Elevate your everyday with our handpicked selection of premium accessories and lifestyle essentials.",
		CTA:         "Shop Accessories",
		Category:    "accessories",
	},
}

var homeFeatures = []Feature{
	{Title: "Premium Quality", Description: "Carefully curated products that meet our high standards"},
	{Title: "Fast Delivery", Description: "Quick and reliable shipping to your doorstep"},
	{Title: "Secure Shopping", Description: "Your data and payments are always protected"},
	{Title: "24/7 Support", Description: "Our team is here to help you anytime"},
}

var siteFooter = Footer{
	Blurb: "Your premium destination for quality products at affordable prices. " +
		"Experience the ease of smart shopping with our curated collection.",
	QuickLinks: []FooterLink{
		{Href: "/about", Label: "About Us"},
		{Href: "/contact", Label: "Contact"},
		{Href: "/privacy", Label: "Privacy Policy"},
		{Href: "/terms", Label: "Terms & Conditions"},
	},
	Categories: []FooterLink{
		{Href: "/shop?category=clothing", Label: "Clothing"},
		{Href: "/shop?category=watches", Label: "Watches"},
		{Href: "/shop?category=electronics", Label: "Electronics"},
		{Href: "/shop?category=accessories", Label: "Accessories"},
	},
}

var staticPages = map[string]Page{
	"about": {
		Slug:    "about",
		Title:   "About Sasta-Ease",
		Tagline: "We're on a mission to make premium shopping accessible to everyone, combining quality products with unbeatable prices and exceptional service.",
		Sections: []string{
			"Founded in 2020, Sasta-Ease began with a simple vision: to bridge the gap between premium quality and affordable pricing.",
			"What started as a small team of passionate individuals has grown into a thriving e-commerce platform serving thousands of customers worldwide.",
			"Today, we're proud to offer a carefully curated selection of clothing, watches, electronics, and accessories, all backed by our commitment to quality.",
		},
	},
	"contact": {
		Slug:     "contact",
		Title:    "Contact Us",
		Sections: []string{"Contact page coming soon..."},
	},
	"privacy": {
		Slug:     "privacy",
		Title:    "Privacy Policy",
		Sections: []string{"Privacy policy coming soon..."},
	},
	"terms": {
		Slug:     "terms",
		Title:    "Terms & Conditions",
		Sections: []string{"Terms and conditions coming soon..."},
	},
}
