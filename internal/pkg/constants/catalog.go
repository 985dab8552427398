package constants

// DefaultRegions are the West Java regencies the dashboard covers. The order
// is the tie-break order of the regional ranking.
var DefaultRegions = []string{
	"Garut",
	"Bandung",
	"Sukabumi",
	"Cianjur",
	"Tasikmalaya",
	"Ciamis",
	"Kuningan",
	"Majalengka",
	"Sumedang",
	"Subang",
	"Purwakarta",
	"Karawang",
	"Bekasi",
	"Bogor",
	"Cirebon",
}

var DefaultCommodities = []string{
	"Padi",
	"Jagung",
	"Kedelai",
	"Kacang Tanah",
	"Ubi Kayu",
	"Ubi Jalar",
	"Sayuran",
	"Buah-buahan",
	"Kopi",
	"Teh",
	"Kelapa",
	"Cengkeh",
}
