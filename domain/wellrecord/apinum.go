package wellrecord

import "strings"

// StateCodes maps the leading two digits of an API number to the issuing
// state under the state regulatory numbering scheme.
var StateCodes = map[string]string{
	"01": "Alabama",
	"02": "Arizona",
	"03": "Arkansas",
	"04": "California",
	"05": "Colorado",
	"06": "Connecticut",
	"07": "Delaware",
	"08": "District of Columbia",
	"09": "Florida",
	"10": "Georgia",
	"11": "Idaho",
	"12": "Illinois",
	"13": "Indiana",
	"14": "Iowa",
	"15": "Kansas",
	"16": "Kentucky",
	"17": "Louisiana",
	"18": "Maine",
	"19": "Maryland",
	"20": "Massachusetts",
	"21": "Michigan",
	"22": "Minnesota",
	"23": "Mississippi",
	"24": "Missouri",
	"25": "Montana",
	"26": "Nebraska",
	"27": "Nevada",
	"28": "New Hampshire",
	"29": "New Jersey",
	"30": "New Mexico",
	"31": "New York",
	"32": "North Carolina",
	"33": "North Dakota",
	"34": "Ohio",
	"35": "Oklahoma",
	"36": "Oregon",
	"37": "Pennsylvania",
	"38": "Rhode Island",
	"39": "South Carolina",
	"40": "South Dakota",
	"41": "Tennessee",
	"42": "Texas",
	"43": "Utah",
	"44": "Vermont",
	"45": "Virginia",
	"46": "Washington",
	"47": "West Virginia",
	"48": "Wisconsin",
	"49": "Wyoming",
	"50": "Alaska",
	"51": "Hawaii",
	"55": "Alaska Offshore",
	"56": "Pacific Coast Offshore",
	"60": "Northern Gulf of Mexico",
	"61": "Atlantic Coast Offshore",
}

// ValidateAPINum reports whether an API number follows the standard schema,
// either "05-123-45678" or "05-123-45678-00-01", and whether its state code
// is a known code. The county code and well sequence are checked only for
// shape, not for existence.
func ValidateAPINum(apiNum string) bool {
	components := strings.Split(apiNum, "-")
	if len(components) != 3 && len(components) != 5 {
		return false
	}
	if _, ok := StateCodes[components[0]]; !ok {
		return false
	}
	if len(components[1]) != 3 || len(components[2]) != 5 {
		return false
	}
	if len(components) == 5 && (len(components[3]) != 2 || len(components[4]) != 2) {
		return false
	}
	return true
}

// StateCode returns the two-digit state code component of an API number,
// or the empty string if the number has no components.
func StateCode(apiNum string) string {
	components := strings.SplitN(apiNum, "-", 2)
	if len(components) == 0 {
		return ""
	}
	return components[0]
}

// StateName returns the name of the state that issued the API number, or
// the empty string if the state code is unknown.
func StateName(apiNum string) string {
	return StateCodes[StateCode(apiNum)]
}
