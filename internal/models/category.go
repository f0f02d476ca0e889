package models

// CategoryBackgrounds maps a content folder name to its cover background.
// Categories without a dedicated asset reuse another category's image.
var CategoryBackgrounds = map[string]string{
	"ADALET":       "bg_adalet_1766747877008.png",
	"AİLE":         "bg_aile_1766747906311.png",
	"D8":           "bg_dis_politika_1766747922386.png",
	"DIŞ POLİTİKA": "bg_dis_politika_1766747922386.png",
	"EKONOMİ":      "bg_ekonomi_1766747940038.png",
	"EĞİTİM":       "bg_egitim_1766747957172.png",
	"GENÇLİK":      "bg_genclik_1766747993316.png",
	"SAĞLIK":       "bg_saglik_1766748012581.png",
	"TARIM":        "bg_tarim_1766748066812.png",
	"TEKNOLOJİ":    "bg_ekonomi_1766747940038.png",
	"ŞEHİRCİLİK":   "bg_dis_politika_1766747922386.png",
}
