package sqlinline

const QCreateLibraryAssets = `--sql 3c1d7e52-8b0a-4f6e-9d21-5a7c0e4b9f13
create table if not exists library_assets (
  id text primary key,
  name text not null,
  url text not null,
  category text not null,
  store_id text not null,
  created_at timestamptz not null default now()
);
`

const QUpsertLibraryAsset = `--sql 8f2b6a14-0c3e-4d59-a7b1-2e9c4f6d8a05
insert into library_assets (id, name, url, category, store_id, created_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::timestamptz)
on conflict (id) do update
set name = excluded.name,
    url = excluded.url,
    category = excluded.category,
    store_id = excluded.store_id;
`

const QSelectLibraryAsset = `--sql 71d9c2e4-3a5b-4f08-b6e1-9c2d4a7f0b62
select id, name, url, category, store_id, created_at
from library_assets
where id = $1::text
limit 1;
`

const QListLibraryAssets = `--sql c8e05a3f-1d27-4b96-8f4a-6e3b2d9c1a70
select id, name, url, category, store_id, created_at
from library_assets
where ($1::text = '' or store_id = $1::text)
  and ($2::text = '' or $2::text = 'all' or category = $2::text)
order by created_at, id;
`

const QUpdateLibraryAsset = `--sql 2f6b9e0d-4c81-4a3e-9b57-d1e8a6c4f293
update library_assets
set name = $2::text,
    url = $3::text,
    category = $4::text,
    store_id = $5::text
where id = $1::text;
`

const QDeleteLibraryAsset = `--sql a4c3e8d0-61f2-4b7a-8e95-0d2b7c6f1e38
delete from library_assets
where id = $1::text;
`

const QSeedLibraryAsset = `--sql 5b7e2c90-d43a-4f1e-8a6b-0c9f3e2d7a14
insert into library_assets (id, name, url, category, store_id, created_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::timestamptz)
on conflict (id) do nothing;
`
