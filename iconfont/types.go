package iconfont

// Wire shapes of the iconfont JSON API.

type searchData struct {
	Icons []apiIcon `json:"icons"`
	Count int       `json:"count"`
}

type apiIcon struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	FontClass  string   `json:"font_class"`
	Unicode    string   `json:"unicode"`
	ShowSVG    string   `json:"show_svg"`
	PreviewURL string   `json:"preview_url"`
	CreatedAt  string   `json:"created_at"`
	User       *apiUser `json:"user"`
	Repository *apiRepo `json:"repository"`
}

type apiUser struct {
	Nickname string `json:"nickname"`
}

type apiRepo struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
