package cleanup

import "log"

// Job is a named shutdown step registered by the component that owns the
// resource (a pgx pool, an open listener).
type Job struct {
	Name string
	F    func() error
}

var jobs []*Job

func Register(j *Job) {
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in registration order. Failures are logged
// and do not stop the remaining jobs.
func CleanUp() {
	for _, j := range jobs {
		log.Printf("cleanup job %s started...", j.Name)
		if err := j.F(); err != nil {
			log.Printf("cleanup job %s finished with error: %v", j.Name, err)
			continue
		}
		log.Printf("cleanup job %s done", j.Name)
	}
}
