package nse

// indexSymbols はNSEの主要指数名です。indicesHistory の indexType にそのまま渡せます。
var indexSymbols = []string{
	"NIFTY 50",
	"NIFTY NEXT 50",
	"NIFTY 100",
	"NIFTY 200",
	"NIFTY 500",
	"NIFTY MIDCAP 50",
	"NIFTY MIDCAP 100",
	"NIFTY SMALLCAP 100",
	"NIFTY BANK",
	"NIFTY FINANCIAL SERVICES",
	"NIFTY IT",
	"NIFTY AUTO",
	"NIFTY FMCG",
	"NIFTY METAL",
	"NIFTY PHARMA",
	"NIFTY REALTY",
	"NIFTY ENERGY",
	"NIFTY MEDIA",
	"NIFTY PSU BANK",
	"NIFTY PRIVATE BANK",
	"INDIA VIX",
}

// IndexSymbols は指数名の一覧のコピーを返します。
func IndexSymbols() []string {
	out := make([]string, len(indexSymbols))
	copy(out, indexSymbols)
	return out
}
