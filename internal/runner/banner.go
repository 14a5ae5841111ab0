package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = (`
            __
 ___ ______/ /  ___ _____ __ _____ _____
/ _ '/ __/ _ \/ _ '(_-</ // / ' \ / -_)
\_, /_/ /_//_/\_,_/___/\_,_/_/_/_/\__/
/___/
`)

var version = "v0.0.1"

// showBanner prints the startup banner, the same idiom the teacher uses to
// identify the tool in verbose/interactive runs.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\trdf graph summarizer %s\n\n", version)
}
