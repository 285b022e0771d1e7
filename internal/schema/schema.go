package schema

// DDL is applied at startup; the runs table is the append-only destination
// for one record per pipeline invocation.
const DDL = `
create table if not exists runs (
	id              text primary key,
	started_at      timestamp not null,
	finished_at     timestamp not null,
	host            text not null,
	remote_path     text not null,
	status          text not null,
	parsed_samples  integer not null,
	skipped_lines   integer not null,
	window_samples  integer not null,
	mean_temp       real,
	variance        real,
	linear_status   text not null,
	slope           real,
	intercept       real,
	linear_r2       real,
	exp_status      text not null,
	exp_a           real,
	exp_b           real,
	exp_r2          real,
	plot_path       text not null default '',
	degraded        text not null default '',
	message         text not null default ''
);

create index if not exists idx_runs_started_at on runs (started_at desc);
`
