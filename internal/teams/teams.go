// Package teams holds the static franchise registry for the four supported
// leagues: official rosters, schedule-site abbreviations, and the team-code
// tables used to split same-city matchups. The registry is built once at
// startup and is read-only afterwards, so it is safe to share across
// concurrent requests.
package teams

import "strings"

// League identifies one of the four supported leagues by its schedule-site code.
type League string

const (
	Basketball League = "NBA"
	Football   League = "NFL"
	Baseball   League = "MLB"
	Hockey     League = "NHL"
)

// Leagues lists every supported league in a stable order.
var Leagues = []League{Basketball, Football, Baseball, Hockey}

// ParseLeague normalizes a league code. The second return is false for
// anything outside the supported set.
func ParseLeague(code string) (League, bool) {
	switch League(strings.ToUpper(strings.TrimSpace(code))) {
	case Basketball:
		return Basketball, true
	case Football:
		return Football, true
	case Baseball:
		return Baseball, true
	case Hockey:
		return Hockey, true
	}
	return "", false
}

// rosters maps each league to its official franchise names. Kept sorted so
// partial-match resolution is deterministic: a bare city shared by two
// franchises resolves to the alphabetically first one unless a stronger
// signal disambiguates it.
var rosters = map[League][]string{
	Basketball: {
		"Atlanta Hawks", "Boston Celtics", "Brooklyn Nets", "Charlotte Hornets",
		"Chicago Bulls", "Cleveland Cavaliers", "Dallas Mavericks", "Denver Nuggets",
		"Detroit Pistons", "Golden State Warriors", "Houston Rockets", "Indiana Pacers",
		"Los Angeles Clippers", "Los Angeles Lakers", "Memphis Grizzlies", "Miami Heat",
		"Milwaukee Bucks", "Minnesota Timberwolves", "New Orleans Pelicans", "New York Knicks",
		"Oklahoma City Thunder", "Orlando Magic", "Philadelphia 76ers", "Phoenix Suns",
		"Portland Trail Blazers", "Sacramento Kings", "San Antonio Spurs", "Toronto Raptors",
		"Utah Jazz", "Washington Wizards",
	},
	Football: {
		"Arizona Cardinals", "Atlanta Falcons", "Baltimore Ravens", "Buffalo Bills",
		"Carolina Panthers", "Chicago Bears", "Cincinnati Bengals", "Cleveland Browns",
		"Dallas Cowboys", "Denver Broncos", "Detroit Lions", "Green Bay Packers",
		"Houston Texans", "Indianapolis Colts", "Jacksonville Jaguars", "Kansas City Chiefs",
		"Las Vegas Raiders", "Los Angeles Chargers", "Los Angeles Rams", "Miami Dolphins",
		"Minnesota Vikings", "New England Patriots", "New Orleans Saints", "New York Giants",
		"New York Jets", "Philadelphia Eagles", "Pittsburgh Steelers", "San Francisco 49ers",
		"Seattle Seahawks", "Tampa Bay Buccaneers", "Tennessee Titans", "Washington Commanders",
	},
	Baseball: {
		"Arizona Diamondbacks", "Atlanta Braves", "Baltimore Orioles", "Boston Red Sox",
		"Chicago Cubs", "Chicago White Sox", "Cincinnati Reds", "Cleveland Guardians",
		"Colorado Rockies", "Detroit Tigers", "Houston Astros", "Kansas City Royals",
		"Los Angeles Angels", "Los Angeles Dodgers", "Miami Marlins", "Milwaukee Brewers",
		"Minnesota Twins", "New York Mets", "New York Yankees", "Oakland Athletics",
		"Philadelphia Phillies", "Pittsburgh Pirates", "San Diego Padres", "San Francisco Giants",
		"Seattle Mariners", "St. Louis Cardinals", "Tampa Bay Rays", "Texas Rangers",
		"Toronto Blue Jays", "Washington Nationals",
	},
	Hockey: {
		"Anaheim Ducks", "Arizona Coyotes", "Boston Bruins", "Buffalo Sabres",
		"Calgary Flames", "Carolina Hurricanes", "Chicago Blackhawks", "Colorado Avalanche",
		"Columbus Blue Jackets", "Dallas Stars", "Detroit Red Wings", "Edmonton Oilers",
		"Florida Panthers", "Los Angeles Kings", "Minnesota Wild", "Montreal Canadiens",
		"Nashville Predators", "New Jersey Devils", "New York Islanders", "New York Rangers",
		"Ottawa Senators", "Philadelphia Flyers", "Pittsburgh Penguins", "San Jose Sharks",
		"Seattle Kraken", "St. Louis Blues", "Tampa Bay Lightning", "Toronto Maple Leafs",
		"Vancouver Canucks", "Vegas Golden Knights", "Washington Capitals", "Winnipeg Jets",
	},
}

// abbreviations maps the schedule site's short codes to official names.
// Lookups are case-sensitive: the codes appear verbatim in cell text.
var abbreviations = map[League]map[string]string{
	Basketball: {
		"GS":  "Golden State Warriors",
		"SA":  "San Antonio Spurs",
		"NO":  "New Orleans Pelicans",
		"NY":  "New York Knicks",
		"OKC": "Oklahoma City Thunder",
		"LAL": "Los Angeles Lakers",
		"LAC": "Los Angeles Clippers",
		"CHA": "Charlotte Hornets",
		"CLE": "Cleveland Cavaliers",
		"WAS": "Washington Wizards",
		"PHI": "Philadelphia 76ers",
		"PHX": "Phoenix Suns",
		"POR": "Portland Trail Blazers",
	},
	Football: {
		"SF":  "San Francisco 49ers",
		"NO":  "New Orleans Saints",
		"TB":  "Tampa Bay Buccaneers",
		"GB":  "Green Bay Packers",
		"KC":  "Kansas City Chiefs",
		"NE":  "New England Patriots",
		"LV":  "Las Vegas Raiders",
		"NYG": "New York Giants",
		"NYJ": "New York Jets",
		"WSH": "Washington Commanders",
		"JAX": "Jacksonville Jaguars",
		"LAR": "Los Angeles Rams",
		"LAC": "Los Angeles Chargers",
	},
	Baseball: {
		"SF":  "San Francisco Giants",
		"SD":  "San Diego Padres",
		"CWS": "Chicago White Sox",
		"CHC": "Chicago Cubs",
		"CHW": "Chicago White Sox",
		"NYY": "New York Yankees",
		"NYM": "New York Mets",
		"STL": "St. Louis Cardinals",
		"KC":  "Kansas City Royals",
		"TB":  "Tampa Bay Rays",
		"TBR": "Tampa Bay Rays",
		"LAD": "Los Angeles Dodgers",
		"LA":  "Los Angeles Dodgers",
		"LAA": "Los Angeles Angels",
		"TOR": "Toronto Blue Jays",
		"DET": "Detroit Tigers",
		"BOS": "Boston Red Sox",
		"BAL": "Baltimore Orioles",
		"OAK": "Oakland Athletics",
		"SEA": "Seattle Mariners",
		"HOU": "Houston Astros",
		"ARI": "Arizona Diamondbacks",
		"ATL": "Atlanta Braves",
		"MIA": "Miami Marlins",
		"PHI": "Philadelphia Phillies",
		"WSH": "Washington Nationals",
		"CIN": "Cincinnati Reds",
		"PIT": "Pittsburgh Pirates",
		"MIL": "Milwaukee Brewers",
		"COL": "Colorado Rockies",
		"CLE": "Cleveland Guardians",
		"MIN": "Minnesota Twins",
		"TEX": "Texas Rangers",
	},
	Hockey: {
		"SJ":  "San Jose Sharks",
		"TB":  "Tampa Bay Lightning",
		"TBL": "Tampa Bay Lightning",
		"NJ":  "New Jersey Devils",
		"VGK": "Vegas Golden Knights",
		"LA":  "Los Angeles Kings",
		"CBJ": "Columbus Blue Jackets",
		"NYR": "New York Rangers",
		"NYI": "New York Islanders",
		"TOR": "Toronto Maple Leafs",
		"MTL": "Montreal Canadiens",
		"VAN": "Vancouver Canucks",
		"WSH": "Washington Capitals",
		"EDM": "Edmonton Oilers",
		"CGY": "Calgary Flames",
		"NSH": "Nashville Predators",
		"STL": "St. Louis Blues",
		"CHI": "Chicago Blackhawks",
	},
}
