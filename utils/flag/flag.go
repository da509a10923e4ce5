package flag

import "flag"

var (
	ServiceName = flag.String("service", "api_server", "name of the service")
	Port        = flag.String("port", "8080", "port the server listens on")
)

func ParseFlags() {
	flag.Parse()
}
