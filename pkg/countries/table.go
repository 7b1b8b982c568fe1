package countries

// canonicalNames maps present-day country names to ISO 3166-1 alpha-3 codes.
// Keys are stored in display form; the resolver normalizes them on load.
var canonicalNames = map[string]string{
	"Afghanistan":                      "AFG",
	"Albania":                          "ALB",
	"Algeria":                          "DZA",
	"Andorra":                          "AND",
	"Angola":                           "AGO",
	"Antigua and Barbuda":              "ATG",
	"Argentina":                        "ARG",
	"Armenia":                          "ARM",
	"Australia":                        "AUS",
	"Austria":                          "AUT",
	"Azerbaijan":                       "AZE",
	"Bahamas":                          "BHS",
	"Bahrain":                          "BHR",
	"Bangladesh":                       "BGD",
	"Barbados":                         "BRB",
	"Belarus":                          "BLR",
	"Belgium":                          "BEL",
	"Belize":                           "BLZ",
	"Benin":                            "BEN",
	"Bhutan":                           "BTN",
	"Bolivia":                          "BOL",
	"Bosnia and Herzegovina":           "BIH",
	"Botswana":                         "BWA",
	"Brazil":                           "BRA",
	"Brunei":                           "BRN",
	"Bulgaria":                         "BGR",
	"Burkina Faso":                     "BFA",
	"Burundi":                          "BDI",
	"Cambodia":                         "KHM",
	"Cameroon":                         "CMR",
	"Canada":                           "CAN",
	"Cape Verde":                       "CPV",
	"Central African Republic":         "CAF",
	"Chad":                             "TCD",
	"Chile":                            "CHL",
	"China":                            "CHN",
	"Colombia":                         "COL",
	"Comoros":                          "COM",
	"Costa Rica":                       "CRI",
	"Croatia":                          "HRV",
	"Cuba":                             "CUB",
	"Cyprus":                           "CYP",
	"Czech Republic":                   "CZE",
	"Democratic Republic of the Congo": "COD",
	"Denmark":                          "DNK",
	"Djibouti":                         "DJI",
	"Dominica":                         "DMA",
	"Dominican Republic":               "DOM",
	"Ecuador":                          "ECU",
	"Egypt":                            "EGY",
	"El Salvador":                      "SLV",
	"Equatorial Guinea":                "GNQ",
	"Eritrea":                          "ERI",
	"Estonia":                          "EST",
	"Eswatini":                         "SWZ",
	"Ethiopia":                         "ETH",
	"Fiji":                             "FJI",
	"Finland":                          "FIN",
	"France":                           "FRA",
	"Gabon":                            "GAB",
	"Gambia":                           "GMB",
	"Georgia":                          "GEO",
	"Germany":                          "DEU",
	"Ghana":                            "GHA",
	"Greece":                           "GRC",
	"Grenada":                          "GRD",
	"Guatemala":                        "GTM",
	"Guinea":                           "GIN",
	"Guinea-Bissau":                    "GNB",
	"Guyana":                           "GUY",
	"Haiti":                            "HTI",
	"Honduras":                         "HND",
	"Hungary":                          "HUN",
	"Iceland":                          "ISL",
	"India":                            "IND",
	"Indonesia":                        "IDN",
	"Iran":                             "IRN",
	"Iraq":                             "IRQ",
	"Ireland":                          "IRL",
	"Israel":                           "ISR",
	"Italy":                            "ITA",
	"Ivory Coast":                      "CIV",
	"Jamaica":                          "JAM",
	"Japan":                            "JPN",
	"Jordan":                           "JOR",
	"Kazakhstan":                       "KAZ",
	"Kenya":                            "KEN",
	"Kiribati":                         "KIR",
	"Kosovo":                           "XKX",
	"Kuwait":                           "KWT",
	"Kyrgyzstan":                       "KGZ",
	"Laos":                             "LAO",
	"Latvia":                           "LVA",
	"Lebanon":                          "LBN",
	"Lesotho":                          "LSO",
	"Liberia":                          "LBR",
	"Libya":                            "LBY",
	"Liechtenstein":                    "LIE",
	"Lithuania":                        "LTU",
	"Luxembourg":                       "LUX",
	"Madagascar":                       "MDG",
	"Malawi":                           "MWI",
	"Malaysia":                         "MYS",
	"Maldives":                         "MDV",
	"Mali":                             "MLI",
	"Malta":                            "MLT",
	"Marshall Islands":                 "MHL",
	"Mauritania":                       "MRT",
	"Mauritius":                        "MUS",
	"Mexico":                           "MEX",
	"Micronesia":                       "FSM",
	"Moldova":                          "MDA",
	"Monaco":                           "MCO",
	"Mongolia":                         "MNG",
	"Montenegro":                       "MNE",
	"Morocco":                          "MAR",
	"Mozambique":                       "MOZ",
	"Myanmar":                          "MMR",
	"Namibia":                          "NAM",
	"Nauru":                            "NRU",
	"Nepal":                            "NPL",
	"Netherlands":                      "NLD",
	"New Zealand":                      "NZL",
	"Nicaragua":                        "NIC",
	"Niger":                            "NER",
	"Nigeria":                          "NGA",
	"North Korea":                      "PRK",
	"North Macedonia":                  "MKD",
	"Norway":                           "NOR",
	"Oman":                             "OMN",
	"Pakistan":                         "PAK",
	"Palau":                            "PLW",
	"Palestine":                        "PSE",
	"Panama":                           "PAN",
	"Papua New Guinea":                 "PNG",
	"Paraguay":                         "PRY",
	"Peru":                             "PER",
	"Philippines":                      "PHL",
	"Poland":                           "POL",
	"Portugal":                         "PRT",
	"Qatar":                            "QAT",
	"Republic of the Congo":            "COG",
	"Romania":                          "ROU",
	"Russia":                           "RUS",
	"Rwanda":                           "RWA",
	"Saint Kitts and Nevis":            "KNA",
	"Saint Lucia":                      "LCA",
	"Saint Vincent and the Grenadines": "VCT",
	"Samoa":                            "WSM",
	"San Marino":                       "SMR",
	"Sao Tome and Principe":            "STP",
	"Saudi Arabia":                     "SAU",
	"Senegal":                          "SEN",
	"Serbia":                           "SRB",
	"Seychelles":                       "SYC",
	"Sierra Leone":                     "SLE",
	"Singapore":                        "SGP",
	"Slovakia":                         "SVK",
	"Slovenia":                         "SVN",
	"Solomon Islands":                  "SLB",
	"Somalia":                          "SOM",
	"South Africa":                     "ZAF",
	"South Korea":                      "KOR",
	"South Sudan":                      "SSD",
	"Spain":                            "ESP",
	"Sri Lanka":                        "LKA",
	"Sudan":                            "SDN",
	"Suriname":                         "SUR",
	"Sweden":                           "SWE",
	"Switzerland":                      "CHE",
	"Syria":                            "SYR",
	"Taiwan":                           "TWN",
	"Tajikistan":                       "TJK",
	"Tanzania":                         "TZA",
	"Thailand":                         "THA",
	"Timor-Leste":                      "TLS",
	"Togo":                             "TGO",
	"Tonga":                            "TON",
	"Trinidad and Tobago":              "TTO",
	"Tunisia":                          "TUN",
	"Turkey":                           "TUR",
	"Turkmenistan":                     "TKM",
	"Tuvalu":                           "TUV",
	"Uganda":                           "UGA",
	"Ukraine":                          "UKR",
	"United Arab Emirates":             "ARE",
	"United Kingdom":                   "GBR",
	"United States":                    "USA",
	"Uruguay":                          "URY",
	"Uzbekistan":                       "UZB",
	"Vanuatu":                          "VUT",
	"Venezuela":                        "VEN",
	"Vietnam":                          "VNM",
	"Yemen":                            "YEM",
	"Zambia":                           "ZMB",
	"Zimbabwe":                         "ZWE",
}

// aliasNames covers alternate spellings, older names, and the long-form
// names that appear in the source datasets.
var aliasNames = map[string]string{
	"Bolivia, Plurinational State of":       "BOL",
	"Brunei Darussalam":                     "BRN",
	"Burma":                                 "MMR",
	"Burma/Myanmar":                         "MMR",
	"Cabo Verde":                            "CPV",
	"Congo":                                 "COG",
	"Congo, Dem. Rep.":                      "COD",
	"Congo, Democratic Republic of":         "COD",
	"Congo, Rep.":                           "COG",
	"Congo, Republic of the":                "COG",
	"Cote d'Ivoire":                         "CIV",
	"Czechia":                               "CZE",
	"Democratic People's Republic of Korea": "PRK",
	"DR Congo":                              "COD",
	"DRC":                                   "COD",
	"East Timor":                            "TLS",
	"Egypt, Arab Rep.":                      "EGY",
	"Gambia, The":                           "GMB",
	"Iran, Islamic Republic of":             "IRN",
	"Korea, North":                          "PRK",
	"Korea, Republic of":                    "KOR",
	"Korea, South":                          "KOR",
	"Kyrgyz Republic":                       "KGZ",
	"Lao PDR":                               "LAO",
	"Lao People's Democratic Republic":      "LAO",
	"Macedonia":                             "MKD",
	"Micronesia, Federated States of":       "FSM",
	"Moldova, Republic of":                  "MDA",
	"Palestine/West Bank":                   "PSE",
	"Palestinian Territories":               "PSE",
	"Republic of Korea":                     "KOR",
	"Republic of Moldova":                   "MDA",
	"Russian Federation":                    "RUS",
	"Slovak Republic":                       "SVK",
	"Swaziland":                             "SWZ",
	"Syrian Arab Republic":                  "SYR",
	"Tanzania, United Republic of":          "TZA",
	"The Gambia":                            "GMB",
	"Timor":                                 "TLS",
	"United Republic of Tanzania":           "TZA",
	"United States of America":              "USA",
	"Venezuela, Bolivarian Republic of":     "VEN",
	"Venezuela, RB":                         "VEN",
	"Viet Nam":                              "VNM",
	"Yemen, Rep.":                           "YEM",
	"Zaire":                                 "COD",
}
