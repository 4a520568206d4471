package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/repositories"
)

// postcodeToArea maps UK postcode area prefixes to area names. The first two
// letters of the area name become the user-code prefix.
var postcodeToArea = map[string]string{
	"EH": "Edinburgh",
	"G":  "Glasgow",
	"FK": "Falkirk",
	"KY": "Kirkcaldy",
	"DD": "Dundee",
	"AB": "Aberdeen",
	"IV": "Inverness",
	"PA": "Paisley",
	"KA": "Kilmarnock",
	"ML": "Motherwell",
	"DG": "Dumfries",
	"TD": "Galashiels",
	"PH": "Perth",
	"HS": "Harris",
	"ZE": "Shetland",
	"KW": "Kirkwall",
	"BT": "Belfast",
	"L":  "Liverpool",
	"M":  "Manchester",
	"B":  "Birmingham",
	"LS": "Leeds",
	"S":  "Sheffield",
	"NE": "Newcastle",
	"SR": "Sunderland",
	"DH": "Durham",
	"TS": "Teesside",
	"DL": "Darlington",
	"HG": "Harrogate",
	"YO": "York",
	"BD": "Bradford",
	"HU": "Hull",
	"DN": "Doncaster",
	"WF": "Wakefield",
	"HD": "Huddersfield",
	"OL": "Oldham",
	"BL": "Bolton",
	"WN": "Wigan",
	"PR": "Preston",
	"FY": "Blackpool",
	"LA": "Lancaster",
	"BB": "Blackburn",
	"CA": "Carlisle",
	"CH": "Chester",
	"WA": "Warrington",
	"CW": "Crewe",
	"ST": "Stoke",
	"TF": "Telford",
	"WS": "Walsall",
	"WV": "Wolverhampton",
	"DY": "Dudley",
	"CV": "Coventry",
	"LE": "Leicester",
	"NG": "Nottingham",
	"DE": "Derby",
	"LN": "Lincoln",
	"PE": "Peterborough",
	"CB": "Cambridge",
	"IP": "Ipswich",
	"NR": "Norwich",
	"CO": "Colchester",
	"CM": "Chelmsford",
	"SS": "Southend",
	"RM": "Romford",
	"EN": "Enfield",
	"N":  "North London",
	"E":  "East London",
	"SE": "South East London",
	"SW": "South West London",
	"W":  "West London",
	"NW": "North West London",
	"EC": "East Central London",
	"WC": "West Central London",
	"BR": "Bromley",
	"CR": "Croydon",
	"DA": "Dartford",
	"KT": "Kingston",
	"SM": "Sutton",
	"TW": "Twickenham",
	"UB": "Uxbridge",
	"HA": "Harrow",
	"IG": "Ilford",
	"WD": "Watford",
	"SG": "Stevenage",
	"AL": "St Albans",
	"HP": "Hemel Hempstead",
	"LU": "Luton",
	"MK": "Milton Keynes",
	"NN": "Northampton",
	"OX": "Oxford",
	"RG": "Reading",
	"SL": "Slough",
	"GU": "Guildford",
	"RH": "Redhill",
	"BN": "Brighton",
	"TN": "Tonbridge",
	"ME": "Medway",
	"CT": "Canterbury",
	"PO": "Portsmouth",
	"SO": "Southampton",
	"BH": "Bournemouth",
	"DT": "Dorchester",
	"BA": "Bath",
	"BS": "Bristol",
	"SN": "Swindon",
	"GL": "Gloucester",
	"HR": "Hereford",
	"WR": "Worcester",
	"EX": "Exeter",
	"PL": "Plymouth",
	"TQ": "Torquay",
	"TR": "Truro",
	"TA": "Taunton",
	"SP": "Salisbury",
}

// UserCodeGenerator builds the human-readable customer code: two letters of
// the postcode area, two-digit year, 4-digit sequence.
type UserCodeGenerator struct {
	users *repositories.UserRepository
}

func NewUserCodeGenerator(users *repositories.UserRepository) *UserCodeGenerator {
	return &UserCodeGenerator{users: users}
}

func areaCode(postcode string) (string, error) {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(postcode), ""))
	if cleaned == "" {
		return "", apperrors.Validation("Postcode must not be empty")
	}

	prefix := cleaned
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	area, ok := postcodeToArea[prefix]
	if !ok {
		area, ok = postcodeToArea[prefix[:1]]
	}
	if !ok {
		return "", apperrors.Validation("Unsupported postcode prefix for user code generation")
	}

	return strings.ToUpper(area[:2]), nil
}

// Generate produces the next code for a registration at time now.
//
// The sequence counter is scoped by the year suffix only: every area prefix
// registered in the same year draws from one shared counter. That matches the
// behavior this service replaced and is kept deliberately.
func (g *UserCodeGenerator) Generate(ctx context.Context, postcode string, now time.Time) (string, error) {
	area, err := areaCode(postcode)
	if err != nil {
		return "", err
	}

	yearSuffix := now.UTC().Format("06")
	maxSeq, err := g.users.MaxUserCodeSequence(ctx, yearSuffix)
	if err != nil {
		return "", apperrors.Internal("Failed to allocate user code", err)
	}

	return fmt.Sprintf("%s%s%04d", area, yearSuffix, maxSeq+1), nil
}
