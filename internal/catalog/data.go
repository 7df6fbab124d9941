package catalog

import (
	"time"

	"github.com/giftscape-studio/storefront-core/internal/i18n"
	"github.com/giftscape-studio/storefront-core/internal/models"
)

// Static catalog configuration. Loaded once at process start; never mutated.

var products = []models.Product{
	{
		ID:             "p1",
		NameKey:        "glowFrame",
		DescriptionKey: "glowFrameDesc",
		Price:          1299,
		ImageURL:       "https://picsum.photos/seed/glowframe-s/600/600",
		CategoryKey:    "anniversaryGifts",
		Customizable:   true,
		Variations: []models.ProductVariation{
			{ID: "p1-s", NameKey: "glowFrameSmall", Price: 1299, ImageURL: "https://picsum.photos/seed/glowframe-s/600/600"},
			{ID: "p1-m", NameKey: "glowFrameMedium", Price: 1599, ImageURL: "https://picsum.photos/seed/glowframe-m/600/600"},
			{ID: "p1-l", NameKey: "glowFrameLarge", Price: 1999, ImageURL: "https://picsum.photos/seed/glowframe-l/600/600"},
		},
	},
	{ID: "p2", NameKey: "photoRestore", DescriptionKey: "photoRestoreDesc", Price: 899, ImageURL: "https://picsum.photos/seed/photorestore/600/600", CategoryKey: "oldPhotos", Customizable: true},
	{ID: "p3", NameKey: "customPrint", DescriptionKey: "customPrintDesc", Price: 499, ImageURL: "https://picsum.photos/seed/customprint/600/600", CategoryKey: "customPrints", Customizable: true},
	{ID: "p4", NameKey: "birthdayMug", DescriptionKey: "birthdayMugDesc", Price: 399, ImageURL: "https://picsum.photos/seed/birthdaymug/600/600", CategoryKey: "birthdayGifts", Customizable: true},
	{ID: "p5", NameKey: "loveCushion", DescriptionKey: "loveCushionDesc", Price: 799, ImageURL: "https://picsum.photos/seed/lovecushion/600/600", CategoryKey: "loveGifts", Customizable: true},
	{ID: "p6", NameKey: "passportPhotos", DescriptionKey: "passportPhotosDesc", Price: 199, ImageURL: "https://picsum.photos/seed/passport/600/600", CategoryKey: "photoServices", Customizable: false},
}

var categories = map[string]models.Category{
	"birthdayGifts":    {NameKey: "birthdayGifts"},
	"loveGifts":        {NameKey: "loveGifts"},
	"anniversaryGifts": {NameKey: "anniversaryGifts"},
	"photoServices":    {NameKey: "photoServices"},
	"customPrints":     {NameKey: "customPrints"},
	"oldPhotos":        {NameKey: "oldPhotos"},
}

// Strings is the translation table consumed by the localization store.
func Strings() i18n.Table {
	return i18n.Table{
		"appName":        {i18n.LanguageEnglish: "GiftScape Studio", i18n.LanguageBengali: "গিফটস্কেপ স্টুডিও"},
		"home":           {i18n.LanguageEnglish: "Home", i18n.LanguageBengali: "হোম"},
		"addToCart":      {i18n.LanguageEnglish: "Add to Cart", i18n.LanguageBengali: "কার্টে যোগ করুন"},
		"checkout":       {i18n.LanguageEnglish: "Checkout", i18n.LanguageBengali: "চেকআউট"},
		"discount":       {i18n.LanguageEnglish: "Discount", i18n.LanguageBengali: "ছাড়"},
		"placeOrder":     {i18n.LanguageEnglish: "Place Order", i18n.LanguageBengali: "অর্ডার করুন"},
		"birthdayGifts":  {i18n.LanguageEnglish: "Birthday Gifts", i18n.LanguageBengali: "জন্মদিনের উপহার"},
		"loveGifts":      {i18n.LanguageEnglish: "Love Gifts", i18n.LanguageBengali: "প্রেমের উপহার"},
		"anniversaryGifts": {i18n.LanguageEnglish: "Anniversary Gifts", i18n.LanguageBengali: "বার্ষিকী উপহার"},
		"photoServices":  {i18n.LanguageEnglish: "Photo Services", i18n.LanguageBengali: "ফটো পরিষেবা"},
		"customPrints":   {i18n.LanguageEnglish: "Custom Prints", i18n.LanguageBengali: "কাস্টম প্রিন্ট"},
		"oldPhotos":      {i18n.LanguageEnglish: "Old Photo Restoration", i18n.LanguageBengali: "পুরনো ছবি পুনরুদ্ধার"},
		"glowFrame":      {i18n.LanguageEnglish: "Glow Frame", i18n.LanguageBengali: "গ্লো ফ্রেম"},
		"glowFrameDesc":  {i18n.LanguageEnglish: "A backlit photo frame that makes your memories glow.", i18n.LanguageBengali: "একটি ব্যাকলিট ফটো ফ্রেম যা আপনার স্মৃতিকে উজ্জ্বল করে।"},
		"glowFrameSmall": {i18n.LanguageEnglish: "Small (8x8 in)", i18n.LanguageBengali: "ছোট (৮x৮ ইঞ্চি)"},
		"glowFrameMedium": {i18n.LanguageEnglish: "Medium (12x12 in)", i18n.LanguageBengali: "মাঝারি (১২x১২ ইঞ্চি)"},
		"glowFrameLarge": {i18n.LanguageEnglish: "Large (16x16 in)", i18n.LanguageBengali: "বড় (১৬x১৬ ইঞ্চি)"},
		"photoRestore":   {i18n.LanguageEnglish: "AI Photo Restoration", i18n.LanguageBengali: "এআই ফটো পুনরুদ্ধার"},
		"photoRestoreDesc": {i18n.LanguageEnglish: "Bring damaged old photographs back to life.", i18n.LanguageBengali: "ক্ষতিগ্রস্ত পুরনো ছবি আবার জীবন্ত করুন।"},
		"customPrint":    {i18n.LanguageEnglish: "Custom Print", i18n.LanguageBengali: "কাস্টম প্রিন্ট"},
		"customPrintDesc": {i18n.LanguageEnglish: "Premium prints of your favourite photos in any size.", i18n.LanguageBengali: "যেকোনো আকারে আপনার প্রিয় ছবির প্রিমিয়াম প্রিন্ট।"},
		"birthdayMug":    {i18n.LanguageEnglish: "Birthday Mug", i18n.LanguageBengali: "জন্মদিনের মগ"},
		"birthdayMugDesc": {i18n.LanguageEnglish: "A personalized mug for their special day.", i18n.LanguageBengali: "বিশেষ দিনের জন্য একটি ব্যক্তিগতকৃত মগ।"},
		"loveCushion":    {i18n.LanguageEnglish: "Love Cushion", i18n.LanguageBengali: "ভালোবাসার কুশন"},
		"loveCushionDesc": {i18n.LanguageEnglish: "A soft cushion printed with your photo and message.", i18n.LanguageBengali: "আপনার ছবি ও বার্তা সহ একটি নরম কুশন।"},
		"passportPhotos": {i18n.LanguageEnglish: "Passport Photos", i18n.LanguageBengali: "পাসপোর্ট ছবি"},
		"passportPhotosDesc": {i18n.LanguageEnglish: "Compliant passport photo prints, ready in minutes.", i18n.LanguageBengali: "নিয়ম মেনে পাসপোর্ট ছবি, মিনিটের মধ্যে প্রস্তুত।"},
	}
}

// DemoOrders are synthetic fulfillment records seeded into the order archive
// in dev environments so the profile view has history to show.
func DemoOrders() []models.Order {
	find := func(id string) models.Product {
		for i := range products {
			if products[i].ID == id {
				return cloneProduct(products[i])
			}
		}

		return models.Product{}
	}

	p1 := find("p1")
	p1Large := p1.Variation("p1-l")

	return []models.Order{
		{
			ID:         "GSS-84632",
			CustomerID: "demo@giftscape.studio",
			Date:       time.Date(2023, time.October, 26, 0, 0, 0, 0, time.UTC),
			Status:     models.OrderStatusDelivered,
			Subtotal:   1999,
			Shipping:   0,
			Total:      1999,
			Items: []models.CartItem{
				{
					ID:            "p1-p1-l",
					Product:       p1,
					Variation:     p1Large,
					Quantity:      1,
					Customization: &models.CustomizationSnapshot{ImageURL: "https://picsum.photos/seed/order1/200/200", Text: "Our Anniversary"},
				},
			},
			TrackingID:       "TRK-55120-IN",
			ShippingProvider: "BlueDart",
		},
		{
			ID:         "GSS-75190",
			CustomerID: "demo@giftscape.studio",
			Date:       time.Date(2023, time.September, 15, 0, 0, 0, 0, time.UTC),
			Status:     models.OrderStatusDelivered,
			Subtotal:   1297,
			Shipping:   0,
			Total:      1297,
			Items: []models.CartItem{
				{
					ID:            "p2-default",
					Product:       find("p2"),
					Quantity:      1,
					Customization: &models.CustomizationSnapshot{ImageURL: "https://picsum.photos/seed/order2/200/200"},
				},
				{
					ID:       "p6-default",
					Product:  find("p6"),
					Quantity: 2,
				},
			},
		},
		{
			ID:         "GSS-69341",
			CustomerID: "demo@giftscape.studio",
			Date:       time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			Status:     models.OrderStatusProcessing,
			Subtotal:   799,
			Shipping:   0,
			Total:      799,
			Items: []models.CartItem{
				{
					ID:            "p5-default",
					Product:       find("p5"),
					Quantity:      1,
					Customization: &models.CustomizationSnapshot{ImageURL: "https://picsum.photos/seed/order3/200/200", Text: "My Love"},
				},
			},
		},
	}
}

// DemoAddresses mirror the synthetic address book shown on the profile page.
func DemoAddresses() []models.Address {
	return []models.Address{
		{ID: "addr1", Type: models.AddressTypeHome, Line1: "42, Sunset Boulevard", City: "Kolkata", Pincode: "700028", IsDefault: true},
		{ID: "addr2", Type: models.AddressTypeWork, Line1: "1 Tech Park, Silicon Valley", City: "Bengaluru", Pincode: "560100", IsDefault: false},
	}
}
