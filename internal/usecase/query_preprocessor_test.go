package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestNewQueryPreprocessor(t *testing.T) {
	t.Run("falls back to a no-op logger", func(t *testing.T) {
		p := NewQueryPreprocessor(nil)
		if p.logger == nil {
			t.Error("expected logger to be set")
		}
	})

	t.Run("keeps the provided logger", func(t *testing.T) {
		logger := zap.NewExample()
		p := NewQueryPreprocessor(logger)
		if p.logger != logger {
			t.Error("expected provided logger to be used")
		}
	})
}

func TestPreprocessQuery(t *testing.T) {
	p := NewQueryPreprocessor(nil)

	testCases := []struct {
		name        string
		productName string
		want        string
	}{
		{
			name:        "removes size in fl oz",
			productName: "Coca-Cola, 12 fl oz",
			want:        "coca-cola",
		},
		{
			name:        "removes size in oz",
			productName: "Cheerios Cereal, 18 oz",
			want:        "cheerios cereal",
		},
		{
			name:        "removes gallon size",
			productName: "Whole Milk, Vitamin D, Gallon, 128 fl oz",
			want:        "whole milk, vitamin d, gallon", // gallon as standalone word isn't removed
		},
		{
			name:        "removes pack count",
			productName: "Coca-Cola Soda Pop, 6 pack",
			want:        "coca-cola soda pop", // 6 pack should be removed
		},
		{
			name:        "removes lb weight",
			productName: "Tyson Chicken Breasts, 2.5 lb",
			want:        "tyson chicken breasts",
		},
		{
			name:        "keeps marketing words that are part of the name",
			productName: "Premium Select Quality Chicken Breast",
			want:        "premium select quality chicken breast",
		},
		{
			name:        "keeps packaging words",
			productName: "Cheese Slices, Box of American Cheese",
			want:        "cheese slices, box of american cheese",
		},
		{
			name:        "keeps brand words",
			productName: "Special K",
			want:        "special k",
		},
		{
			name:        "keeps multi word brands",
			productName: "Best Foods Mayonnaise",
			want:        "best foods mayonnaise",
		},
		{
			name:        "keeps single word names",
			productName: "Jumbo",
			want:        "jumbo",
		},
		{
			name:        "keeps size words in names",
			productName: "Big Mac",
			want:        "big mac",
		},
		{
			name:        "falls back to the typed name when only a size is left",
			productName: "  500   ml ",
			want:        "500 ml",
		},

		{
			name:        "removes gram weight from an Open Food Facts name",
			productName: "Nutella, 400 g",
			want:        "nutella",
		},
		{
			name:        "handles whitespace only input",
			productName: "   ",
			want:        "",
		},
		{
			name:        "handles empty product name",
			productName: "",
			want:        "",
		},

		{
			name:        "removes count notation",
			productName: "Eggs, Large, 12 count",
			want:        "eggs, large",
		},
		{
			name:        "removes ct abbreviation",
			productName: "Granola Bars, 6 ct",
			want:        "granola bars",
		},
		{
			name:        "removes ml measurement",
			productName: "Yogurt Drink, 500 ml",
			want:        "yogurt drink",
		},
		{
			name:        "handles liter measurement",
			productName: "Sparkling Water, 2 liters",
			want:        "sparkling water",
		},
		{
			name:        "handles grams measurement",
			productName: "Chocolate Bar, 100 grams",
			want:        "chocolate bar",
		},
		{
			name:        "preserves food descriptors",
			productName: "Organic Whole Grain Bread",
			want:        "organic whole grain bread",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.PreprocessQuery(tc.productName)
			if got != tc.want {
				t.Errorf("PreprocessQuery(%q) = %q, want %q", tc.productName, got, tc.want)
			}
		})
	}
}

func TestPreprocessQuery_LongInput(t *testing.T) {
	p := NewQueryPreprocessor(nil)

	// Create a very long product name
	longName := "Super Premium Deluxe Ultimate Organic Natural Fresh Farm Raised Free Range Grass Fed Antibiotic Free Hormone Free Non-GMO Certified Gluten Free Dairy Free Vegan Friendly Heart Healthy Brain Boosting Energy Enhancing Muscle Building Weight Loss Supporting Immune Strengthening Chicken Breast Tenderloin Filet"

	result := p.PreprocessQuery(longName)

	if len(result) > 100 {
		t.Errorf("result length = %d, want <= 100", len(result))
	}
}

func TestPreprocessQuery_MultiByteTruncation(t *testing.T) {
	p := NewQueryPreprocessor(nil)

	result := p.PreprocessQuery("a" + strings.Repeat("é", 60))

	if !utf8.ValidString(result) {
		t.Fatalf("result %q is not valid UTF-8", result)
	}
	if len(result) > maxQueryLength {
		t.Errorf("result length = %d, want <= %d", len(result), maxQueryLength)
	}
	if want := "a" + strings.Repeat("é", 49); result != want {
		t.Errorf("PreprocessQuery() = %q, want %q", result, want)
	}
}

func TestCleanOrphanedPunctuation(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"milk , cheese", "milk cheese"},
		{", milk", " milk"}, // leading comma removed but space remains
		{"milk,", "milk"},
		{"milk - cheese", "milk cheese"},
		{"milk", "milk"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := cleanOrphanedPunctuation(tc.input)
			if got != tc.want {
				t.Errorf("cleanOrphanedPunctuation(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
