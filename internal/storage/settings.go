package storage

type WhiteLabelSettings struct {
	CompanyName  string `json:"companyName"`
	LogoBase64   string `json:"logoBase64"`
	PrimaryColor string `json:"primaryColor"`
	AccentColor  string `json:"accentColor"`
}

func DefaultWhiteLabelSettings() WhiteLabelSettings {
	return WhiteLabelSettings{
		PrimaryColor: "#3b82f6",
		AccentColor:  "#10b981",
	}
}
