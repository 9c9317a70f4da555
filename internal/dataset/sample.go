package dataset

// SampleRows are example training records shown alongside the required
// column list so users can match the expected format. Cell order follows
// RequiredColumns.
var SampleRows = [][]string{
	{
		"University of Wisconsin-Milwaukee", "Technology", "Microsoft Corporation", "1",
		"184000000000", "0.38", "2100000000000", "0.25", "1", "5.1",
		"12000", "50", "26.93787", "27.63102", "7372",
	},
	{
		"University of Illinois Urbana-Champaign", "Retail", "Walmart Inc.", "0",
		"572000000000", "0.02", "410000000000", "0.34", "4", "3.2",
		"33000", "50", "27.27121", "26.73659", "5411",
	},
	{
		"University of Michigan", "Automobile", "Ford Motor Company", "1",
		"160000000000", "0.04", "60000000000", "0.19", "7", "1.8",
		"46000", "25", "26.80239", "24.69900", "3711",
	},
}
