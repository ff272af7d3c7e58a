package navigation

// Route paths owned by the routing collaborator. The navigation core only
// compares against them; it does not define the route table.
const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
)

// Entry is one navigable item: target path, label, and an icon reference
// resolved by the presentation layer.
type Entry struct {
	Path  string
	Label string
	Icon  string
}

// Manifest is the static declaration of menu groups and their ordered
// entries. It is immutable configuration, defined independently of any
// identity; deployments may supply an alternate manifest.
type Manifest struct {
	Main         []Entry
	Features     []Entry
	Gamification []Entry
	Admin        []Entry
}

// Default returns the stock Enterprise Hub manifest.
func Default() Manifest {
	return Manifest{
		Main: []Entry{
			{Path: "/dashboard", Label: "Dashboard", Icon: "home"},
			{Path: "/digital-hq", Label: "Digital HQ", Icon: "grid"},
		},
		Features: []Entry{
			{Path: "/chat", Label: "Chat", Icon: "message-square"},
			{Path: "/spaces", Label: "Spaces", Icon: "users"},
			{Path: "/feed", Label: "Feed", Icon: "file-text"},
			{Path: "/recognition", Label: "Recognition", Icon: "award"},
			{Path: "/polls", Label: "Polls", Icon: "check-square"},
			{Path: "/calls", Label: "Call History", Icon: "phone"},
		},
		Gamification: []Entry{
			{Path: "/leaderboard", Label: "Leaderboard", Icon: "trending-up"},
			{Path: "/achievements", Label: "Achievements", Icon: "award"},
			{Path: "/challenges", Label: "Challenges", Icon: "target"},
			{Path: "/rewards", Label: "Rewards", Icon: "gift"},
		},
		Admin: []Entry{
			{Path: "/approvals", Label: "Approvals", Icon: "check-square"},
			{Path: "/invitations", Label: "Invitations", Icon: "mail"},
			{Path: "/admin", Label: "Admin Panel", Icon: "settings"},
		},
	}
}
