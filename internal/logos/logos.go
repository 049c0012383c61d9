// Package logos maps well-known subscription names to bundled logo assets.
// The table mirrors the assets shipped with the web client; lookups are
// keyed by a normalized form of the display name.
package logos

import "strings"

const defaultLogo = "/images/logos/default.svg"

var logoByName = map[string]string{
	// Streaming
	"netflix":        "/images/logos/netflix.png",
	"spotify":        "/images/logos/spotify.png",
	"disney+":        "/images/logos/disney-plus.svg",
	"disneyplus":     "/images/logos/disney-plus.svg",
	"hulu":           "/images/logos/hulu.png",
	"hbomax":         "/images/logos/hbo-max.jpeg",
	"amazonprime":    "/images/logos/amazon-prime.png",
	"youtubepremium": "/images/logos/youtube-premium.png",
	"appletv+":       "/images/logos/apple-tv.png",
	"appletv":        "/images/logos/apple-tv.png",
	"paramount+":     "/images/logos/paramount-plus.png",
	"crunchyroll":    "/images/logos/crunchyroll.jpeg",

	// Productivity
	"adobecreativecloud": "/images/logos/adobe-cc.png",
	"adobe":              "/images/logos/adobe-cc.png",
	"microsoft365":       "/images/logos/microsoft-365.png",
	"office365":          "/images/logos/microsoft-365.png",
	"googleworkspace":    "/images/logos/google-workspace.png",
	"notion":             "/images/logos/notion.png",
	"figma":              "/images/logos/figma.png",
	"slack":              "/images/logos/slack.png",
	"zoom":               "/images/logos/zoom.webp",

	// Storage
	"dropbox":     "/images/logos/dropbox.png",
	"onedrive":    "/images/logos/onedrive.png",
	"googledrive": "/images/logos/google-drive.png",
	"icloud":      "/images/logos/icloud.png",

	// Gaming
	"playstationplus": "/images/logos/playstation-plus.png",
	"xboxgamepass":    "/images/logos/xbox-game-pass.png",
	"nintendoonline":  "/images/logos/nintendo-online.svg",
	"steam":           "/images/logos/steam.svg",

	// Music
	"applemusic": "/images/logos/apple-music.svg",
	"tidal":      "/images/logos/tidal.svg",
	"deezer":     "/images/logos/deezer.svg",
}

// Lookup returns the logo asset path for a subscription display name.
// Matching ignores case and spaces ("HBO Max" and "hbomax" resolve the
// same). Unknown names get the default logo.
func Lookup(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
	if logo, ok := logoByName[key]; ok {
		return logo
	}
	return defaultLogo
}

// Known reports whether a display name resolves to a bundled logo.
func Known(name string) bool {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
	_, ok := logoByName[key]
	return ok
}
