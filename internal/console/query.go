package console

// FailureText is the fixed result shown when a query exchange fails; the
// real answer slot is never left holding a stale value alongside an error.
const FailureText = "Error contacting query service."

// QueryClient tracks the query tester's request/response cycle. It is
// independent of the job controller and the telemetry stream. A generation
// counter guards the result slot: only the response matching the most
// recent submission may land, so overlapping submissions cannot race.
type QueryClient struct {
	inFlight  bool
	gen       int
	result    string
	hasResult bool
}

func NewQueryClient() *QueryClient {
	return &QueryClient{}
}

// Begin marks a new submission and returns its generation token. Empty
// queries are permitted and forwarded like any other.
func (q *QueryClient) Begin() int {
	q.gen++
	q.inFlight = true
	q.result = ""
	q.hasResult = false
	return q.gen
}

// Complete stores a successful answer. A stale generation is discarded and
// reported false.
func (q *QueryClient) Complete(gen int, text string) bool {
	if gen != q.gen {
		return false
	}
	q.inFlight = false
	q.result = text
	q.hasResult = true
	return true
}

// Fail settles a failed exchange with the fixed failure text. A stale
// generation is discarded and reported false.
func (q *QueryClient) Fail(gen int) bool {
	if gen != q.gen {
		return false
	}
	q.inFlight = false
	q.result = FailureText
	q.hasResult = true
	return true
}

func (q *QueryClient) InFlight() bool {
	return q.inFlight
}

// Result returns the last settled result, if any.
func (q *QueryClient) Result() (string, bool) {
	return q.result, q.hasResult
}
