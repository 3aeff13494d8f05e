package sqlinline

// QSelectTeamBasePrompt matches team_name exactly; the stored prompt is
// returned untouched.
const QSelectTeamBasePrompt = `--sql 3b8f6c1e-5a2d-4e7b-9c41-0d6a2f8e71b5
select team_base_prompt
from team_references
where team_name = $1::text
limit 1;
`

const QUpsertTeamBasePrompt = `--sql c7e2a94d-1f38-4b6a-a5d0-82e9f4b3c617
insert into team_references(team_name, team_base_prompt, created_at, updated_at)
values ($1::text, $2::text, now(), now())
on conflict (team_name) do update
set team_base_prompt = excluded.team_base_prompt,
    updated_at = now();
`

const QCreateTeamReferences = `--sql 5d91e0a7-6c24-4f8b-b3e9-a41c7d2f0e58
create table if not exists team_references (
  team_name        text primary key,
  team_base_prompt text not null,
  created_at       timestamptz not null default now(),
  updated_at       timestamptz not null default now()
);
`

const QPing = `--sql 8a4d2c6f-0b7e-4913-8f52-6e1b9d3a7c20
select 1;
`
