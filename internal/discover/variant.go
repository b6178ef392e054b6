package discover

// Variant describes how one kind of page is discovered from a homepage.
// The package-level About and Product variants are the defaults; callers may
// build their own to substitute suffixes or labels per locale or site template.
type Variant struct {
	// Name is used in log lines, e.g. "about".
	Name string
	// Suffixes are appended verbatim to the homepage URL, in priority order.
	Suffixes []string
	// AnchorTexts are exact anchor labels, in priority order.
	AnchorTexts []string
	// PrefixFallback, when non-empty, matches the first anchor whose label
	// starts with it after no exact label matched.
	PrefixFallback string
	// SkipBadHref continues with the next label when a matched anchor has no
	// usable href. When false the search stops with no result.
	SkipBadHref bool
	// NormalizeLabels compares labels after NFKC normalisation, so a
	// non-breaking space or full-width letters match their plain forms.
	// Off by default: labels must match byte for byte.
	NormalizeLabels bool
}

// AboutSuffixes are guessed paths for an About page.
var AboutSuffixes = []string{
	"about", "about-us", "our-story",
	"pages/about", "pages/about-us", "pages/our-story",
	"p/about", "p/about-us", "p/our-story",
}

// ProductSuffixes are guessed paths for a Products/Services page.
var ProductSuffixes = []string{
	"collections", "all-products", "products", "services", "shop", "shop-all",
	"pages/collections", "pages/all-products", "pages/products", "pages/services", "pages/shop", "pages/shop-all",
	"p/collections", "p/all-products", "p/products", "p/services", "p/shop", "p/shop-all",
}

// AboutAnchorTexts are link labels that point at an About page.
var AboutAnchorTexts = []string{
	"About", "About Us", "The Brand", "Our Story", "History", "Mission", "Our Mission", "Who We Are",
}

// ProductAnchorTexts are link labels that point at a Products/Services page.
var ProductAnchorTexts = []string{
	"Shop", "Shop All", "Services", "Collections", "Products",
}

var (
	About = Variant{
		Name:           "about",
		Suffixes:       AboutSuffixes,
		AnchorTexts:    AboutAnchorTexts,
		PrefixFallback: "About",
		SkipBadHref:    true,
	}
	// Product has no prefix fallback and stops at the first matched anchor
	// without a usable href.
	Product = Variant{
		Name:        "product",
		Suffixes:    ProductSuffixes,
		AnchorTexts: ProductAnchorTexts,
	}
)
