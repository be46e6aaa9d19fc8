package workload

type Options struct {
	Workers int
	Trials  int
	Seed    uint64
	Density float64
	// Progress, if set, is called once per finished trial from the worker
	// goroutines. It must be safe for concurrent use.
	Progress func()
}

var DefaultOptions = Options{
	Workers: 4,
	Trials:  100_000,
	Seed:    1,
	Density: 0.25,
}

type Option func(*Options)

func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

func WithTrials(n int) Option {
	return func(o *Options) {
		o.Trials = n
	}
}

func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func WithDensity(d float64) Option {
	return func(o *Options) {
		o.Density = d
	}
}

func WithProgress(fn func()) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}
