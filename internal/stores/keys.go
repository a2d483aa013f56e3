package stores

// Persisted key layout. The names match the browser client's local storage
// keys so an imported state dump stays recognizable.
const (
	accountsKey      = "animeplay_users"
	sessionKey       = "animeplay_auth"
	commentsKey      = "animeplay_comments"
	notificationsKey = "animeplay_notifications"
)
