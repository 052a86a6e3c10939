package auth

type (
	User struct {
		Username string `json:"username"`
	}

	// CredentialsIn is the login and sign-up form payload
	CredentialsIn struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	loginPageData struct {
		Version string
	}
)
